package service

import (
	"context"
	"testing"
	"time"

	"agrimarket/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderSummary(t *testing.T) {
	profiles := newFakeProfiles()
	require.NoError(t, profiles.Create(context.Background(), &model.Profile{UserID: 3, Role: model.RoleRetailer}))

	stats := &fakeStats{}
	for i, name := range []string{"a", "b", "c", "d", "e", "f"} {
		stats.demand = append(stats.demand, model.ItemDemand{
			Item:          name,
			OrderCount:    6 - i,
			TotalQuantity: 10,
			TotalValue:    decimal.NewFromInt(100),
		})
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &statisticsService{statsRepo: stats, profiles: profiles, now: func() time.Time { return now }}

	sum, err := svc.GetOrderSummary(context.Background(), 3, 0)
	require.NoError(t, err)

	assert.Equal(t, 21, sum.TotalOrders)
	assert.Equal(t, 60, sum.TotalQuantity)
	assert.True(t, sum.TotalValue.Equal(decimal.NewFromInt(600)))
	assert.Len(t, sum.Items, 5)
	assert.Equal(t, "a", sum.Items[0].Item)

	assert.Equal(t, uint(1), stats.gotRetail)
	assert.Equal(t, 0, stats.gotLimit)
	assert.Equal(t, now.AddDate(0, 0, -DefaultSummaryDays), stats.start)
	assert.Equal(t, now, stats.end)

	_, err = svc.GetOrderSummary(context.Background(), 3, 10_000)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -MaxSummaryDays), stats.start)
}
