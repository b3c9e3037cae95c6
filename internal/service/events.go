package service

import (
	"context"

	"agrimarket/internal/queue"

	"go.uber.org/zap"
)

// Notifier pushes a realtime event to every live connection of a user.
type Notifier interface {
	Notify(userID uint, event string, data any)
}

// publishEvent sends an event after the owning transaction committed.
// Failures are logged and swallowed since the request itself succeeded.
func publishEvent(ctx context.Context, events queue.Publisher, log *zap.Logger, q string, v any) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, q, v); err != nil {
		log.Warn("event publish failed", zap.String("queue", q), zap.Error(err))
	}
}
