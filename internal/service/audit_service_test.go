package service

import (
	"context"
	"testing"
	"time"

	"agrimarket/internal/model"
	"agrimarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAuditLogs(t *testing.T) {
	audit := &fakeAudit{}
	ctx := context.Background()
	uid := uint(4)
	at := time.Date(2025, 3, 9, 14, 5, 6, 0, time.UTC)

	require.NoError(t, audit.Log(ctx, &model.AuditLog{Action: model.ActionRegisterUser, EntityName: "boot", CreatedAt: at}))
	for range 3 {
		require.NoError(t, audit.Log(ctx, &model.AuditLog{
			UserID:    &uid,
			User:      &model.User{ID: uid, Username: "r1"},
			Action:    model.ActionCreateItem,
			CreatedAt: at,
		}))
	}

	svc := NewAuditService(audit)

	logs, total, err := svc.GetAuditLogs(ctx, repository.AuditFilter{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, logs, 2)
	assert.Equal(t, uint(4), logs[0].ID, "newest first")
	assert.Equal(t, "r1", logs[0].Username)
	assert.Equal(t, "2025-03-09 14:05:06", logs[0].CreatedAt)

	logs, _, err = svc.GetAuditLogs(ctx, repository.AuditFilter{Action: model.ActionRegisterUser}, 0, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "System", logs[0].Username)
	assert.Nil(t, logs[0].UserID)

	logs, total, err = svc.GetAuditLogs(ctx, repository.AuditFilter{}, 9, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Empty(t, logs)
}
