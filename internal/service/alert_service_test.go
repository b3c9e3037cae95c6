package service

import (
	"context"
	"encoding/json"
	"testing"

	"agrimarket/internal/errs"
	"agrimarket/internal/model"
	"agrimarket/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAlerts_CreateNotifies(t *testing.T) {
	repo := &fakeAlerts{}
	n := &recordingNotifier{}
	svc := NewAlertService(repo, n, zap.NewNop())
	ctx := context.Background()

	a, err := svc.Create(ctx, 4, "Rain expected", "")
	require.NoError(t, err)
	assert.Equal(t, model.SeverityInfo, a.Severity)

	require.Len(t, n.sent, 1)
	assert.Equal(t, uint(4), n.sent[0].userID)
	assert.Equal(t, EventAlert, n.sent[0].event)

	_, err = svc.Create(ctx, 4, "x", "urgent")
	var verr *errs.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAlerts_ListAndMarkSeen(t *testing.T) {
	svc := NewAlertService(&fakeAlerts{}, nil, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Create(ctx, 1, "one", model.SeverityWarning)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "two", model.SeverityInfo)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, "other user", model.SeverityInfo)
	require.NoError(t, err)

	require.NoError(t, svc.MarkSeen(ctx, 1, first.ID))
	assert.ErrorIs(t, svc.MarkSeen(ctx, 2, first.ID), errs.ErrNotFound)

	all, err := svc.List(ctx, 1, false, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unseen, err := svc.List(ctx, 1, true, 0)
	require.NoError(t, err)
	require.Len(t, unseen, 1)
	assert.Equal(t, "two", unseen[0].Message)
}

func TestAlerts_HandleLowStock(t *testing.T) {
	repo := &fakeAlerts{}
	svc := NewAlertService(repo, nil, zap.NewNop())

	body, _ := json.Marshal(queue.LowStockEvent{UserID: 9, Name: "tomato", Quantity: 0})
	require.NoError(t, svc.HandleLowStock(context.Background(), body))
	body, _ = json.Marshal(queue.LowStockEvent{UserID: 9, Name: "onion", Quantity: 4})
	require.NoError(t, svc.HandleLowStock(context.Background(), body))

	require.Len(t, repo.rows, 2)
	assert.Equal(t, model.SeverityCritical, repo.rows[0].Severity)
	assert.Equal(t, model.SeverityWarning, repo.rows[1].Severity)
	assert.Contains(t, repo.rows[1].Message, "onion")

	assert.Error(t, svc.HandleLowStock(context.Background(), []byte("{")))
}

func TestAlerts_LowStockThroughDirectQueue(t *testing.T) {
	repo := &fakeAlerts{}
	alerts := NewAlertService(repo, nil, zap.NewNop())

	bus := queue.NewDirect(zap.NewNop())
	bus.Subscribe(queue.LowStockQueue, alerts.HandleLowStock)

	profiles := newFakeProfiles()
	require.NoError(t, profiles.Create(context.Background(), &model.Profile{UserID: 1, Role: model.RoleRetailer}))
	inv := NewInventoryService(newFakeItems(), profiles, &fakeAudit{}, fakeTx{}, bus, zap.NewNop())

	_, err := inv.CreateItem(context.Background(), 1, CreateItemRequest{Name: "chilli", Quantity: qty(2)})
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, uint(1), repo.rows[0].UserID)
}
