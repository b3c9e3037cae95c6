package client_test

import (
	"encoding/json"
	"testing"
	"time"

	"agrimarket/internal/inventory"
	"agrimarket/internal/model"
	"agrimarket/pkg/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The client types decode what the server encodes.
func TestViewDecodesServerView(t *testing.T) {
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	items := []model.InventoryItem{
		{ID: 1, RetailerID: 9, Name: "Tomato", Item: "veg", Quantity: 5, CreatedAt: created, UpdatedAt: created},
		{ID: 2, RetailerID: 9, Name: "Rice", Item: "grain", Quantity: 80, CreatedAt: created, UpdatedAt: created},
	}
	server := inventory.DeriveView(items, "", inventory.FilterAll)
	bs, err := json.Marshal(server)
	require.NoError(t, err)

	var got client.View
	require.NoError(t, json.Unmarshal(bs, &got))
	require.Len(t, got.Items, 2)
	assert.Equal(t, client.Item{ID: 1, RetailerID: 9, Name: "Tomato", Item: "veg", Quantity: 5, CreatedAt: created, UpdatedAt: created}, got.Items[0].Item)
	assert.Equal(t, string(inventory.BandLow), got.Items[0].Band)
	assert.Equal(t, string(inventory.BandSufficient), got.Items[1].Band)
	assert.Equal(t, server.Stats.TotalQuantity, got.Stats.TotalQuantity)
	assert.Equal(t, server.Stats.LowStock, got.Stats.LowStock)

	for _, f := range []client.Filter{client.FilterAll, client.FilterLowStock, client.FilterHighQuantity, client.FilterRecent} {
		assert.Equal(t, string(f), string(inventory.ParseFilter(string(f))))
	}
	for _, r := range []client.Role{client.RoleFarmer, client.RoleMandiOwner, client.RoleRetailer, client.RoleAdmin} {
		_, ok := model.ParseRole(string(r))
		assert.True(t, ok, string(r))
	}
}
