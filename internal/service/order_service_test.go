package service

import (
	"context"
	"testing"
	"time"

	"agrimarket/internal/errs"
	"agrimarket/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(t *testing.T) (OrderService, *fakeAudit) {
	t.Helper()
	profiles := newFakeProfiles()
	require.NoError(t, profiles.Create(context.Background(), &model.Profile{UserID: 1, Role: model.RoleRetailer}))
	audit := &fakeAudit{}
	return NewOrderService(newFakeOrders(), profiles, audit, fakeTx{}), audit
}

func TestOrders_CRUD(t *testing.T) {
	svc, audit := newOrderFixture(t)
	ctx := context.Background()
	price := decimal.RequireFromString("24.505")

	order, err := svc.CreateOrder(ctx, 1, CreateOrderRequest{
		Source: "KR Market", Destination: "Shop 4", Item: "tomato",
		Quantity: qty(120), PricePerKg: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "24.51", order.PricePerKg.StringFixed(2))
	assert.WithinDuration(t, time.Now(), order.OrderDate, time.Minute)

	q := 80
	updated, err := svc.UpdateOrder(ctx, 1, order.ID, UpdateOrderRequest{Quantity: &q})
	require.NoError(t, err)
	assert.Equal(t, 80, updated.Quantity)
	assert.Equal(t, "tomato", updated.Item)

	list, total, err := svc.ListOrders(ctx, 1, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteOrder(ctx, 1, order.ID))
	_, err = svc.GetOrder(ctx, 1, order.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	assert.Equal(t, []string{model.ActionCreateOrder, model.ActionUpdateOrder, model.ActionDeleteOrder}, audit.actions())
}

func TestOrders_Validation(t *testing.T) {
	svc, _ := newOrderFixture(t)
	neg := decimal.NewFromInt(-1)

	_, err := svc.CreateOrder(context.Background(), 1, CreateOrderRequest{Item: "rice", PricePerKg: &neg})
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)

	var fields []string
	for _, f := range verr.Fields {
		fields = append(fields, f.Loc[1])
	}
	assert.Equal(t, []string{"source", "destination", "quantity", "price_per_kg"}, fields)
}
