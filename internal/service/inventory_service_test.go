package service

import (
	"context"
	"testing"

	"agrimarket/internal/errs"
	"agrimarket/internal/inventory"
	"agrimarket/internal/model"
	"agrimarket/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type inventoryFixture struct {
	svc      InventoryService
	items    *fakeItems
	profiles *fakeProfiles
	audit    *fakeAudit
	events   *recordingPublisher
}

func newInventoryFixture(t *testing.T) *inventoryFixture {
	t.Helper()
	f := &inventoryFixture{
		items:    newFakeItems(),
		profiles: newFakeProfiles(),
		audit:    &fakeAudit{},
		events:   &recordingPublisher{},
	}
	f.svc = NewInventoryService(f.items, f.profiles, f.audit, fakeTx{}, f.events, zap.NewNop())
	return f
}

func (f *inventoryFixture) retailer(t *testing.T, userID uint) {
	t.Helper()
	require.NoError(t, f.profiles.Create(context.Background(), &model.Profile{UserID: userID, Role: model.RoleRetailer}))
}

func qty(n int) *int { return &n }

func TestInventory_CreateAndView(t *testing.T) {
	f := newInventoryFixture(t)
	f.retailer(t, 7)
	ctx := context.Background()

	for _, q := range []int{5, 30, 80} {
		_, err := f.svc.CreateItem(ctx, 7, CreateItemRequest{Name: "item", Quantity: qty(q)})
		require.NoError(t, err)
	}

	v, err := f.svc.View(ctx, 7, "", inventory.FilterAll)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Stats.TotalItems)
	assert.Equal(t, 115, v.Stats.TotalQuantity)
	assert.Equal(t, 1, v.Stats.LowStock)
	assert.Equal(t, 3, v.Stats.RecentlyAdded)

	low, err := f.svc.View(ctx, 7, "", inventory.FilterLowStock)
	require.NoError(t, err)
	require.Len(t, low.Items, 1)
	assert.Equal(t, uint(1), low.Items[0].ID)
	assert.Equal(t, 115, low.Stats.TotalQuantity)

	high, err := f.svc.View(ctx, 7, "", inventory.FilterHighQuantity)
	require.NoError(t, err)
	require.Len(t, high.Items, 1)
	assert.Equal(t, uint(3), high.Items[0].ID)

	assert.Equal(t, []string{model.ActionCreateItem, model.ActionCreateItem, model.ActionCreateItem}, f.audit.actions())
	// only the quantity-5 item is low stock
	assert.Equal(t, []string{queue.LowStockQueue}, f.events.published())
}

func TestInventory_OwnershipIsolation(t *testing.T) {
	f := newInventoryFixture(t)
	f.retailer(t, 1)
	f.retailer(t, 2)
	ctx := context.Background()

	item, err := f.svc.CreateItem(ctx, 1, CreateItemRequest{Name: "rice", Quantity: qty(20)})
	require.NoError(t, err)

	_, err = f.svc.GetItem(ctx, 2, item.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteItem(ctx, 2, item.ID), errs.ErrNotFound)

	list, err := f.svc.ListItems(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInventory_RequiresRetailerProfile(t *testing.T) {
	f := newInventoryFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListItems(ctx, 99)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, f.profiles.Create(ctx, &model.Profile{UserID: 5, Role: model.RoleFarmer}))
	_, err = f.svc.ListItems(ctx, 5)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestInventory_CreateValidation(t *testing.T) {
	f := newInventoryFixture(t)
	f.retailer(t, 1)

	_, err := f.svc.CreateItem(context.Background(), 1, CreateItemRequest{Name: " ", Quantity: qty(-1)})
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}

func TestInventory_UpdatePublishesOnlyWhenQuantityDropsLow(t *testing.T) {
	f := newInventoryFixture(t)
	f.retailer(t, 1)
	ctx := context.Background()

	item, err := f.svc.CreateItem(ctx, 1, CreateItemRequest{Name: "onion", Quantity: qty(40)})
	require.NoError(t, err)
	assert.Empty(t, f.events.published())

	name := "red onion"
	updated, err := f.svc.UpdateItem(ctx, 1, item.ID, UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "red onion", updated.Name)
	assert.Equal(t, 40, updated.Quantity)
	assert.Empty(t, f.events.published())

	updated, err = f.svc.UpdateItem(ctx, 1, item.ID, UpdateItemRequest{Quantity: qty(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, []string{queue.LowStockQueue}, f.events.published())

	ev := f.events.events[0].(queue.LowStockEvent)
	assert.Equal(t, uint(1), ev.UserID)
	assert.Equal(t, 3, ev.Quantity)
}

func TestInventory_Delete(t *testing.T) {
	f := newInventoryFixture(t)
	f.retailer(t, 1)
	ctx := context.Background()

	item, err := f.svc.CreateItem(ctx, 1, CreateItemRequest{Name: "wheat", Quantity: qty(60)})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteItem(ctx, 1, item.ID))

	_, err = f.svc.GetItem(ctx, 1, item.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, []string{model.ActionCreateItem, model.ActionDeleteItem}, f.audit.actions())
}
