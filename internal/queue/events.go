// Package queue carries domain events between the API and its background
// consumers, over RabbitMQ or in-process when no broker is configured.
package queue

import (
	"context"
	"time"
)

// Queue names. Routing key equals queue name on the default exchange.
const (
	UserRegisteredQueue = "user.registered"
	LowStockQueue       = "inventory.low_stock"
)

// UserRegisteredEvent is published after a registration commits.
type UserRegisteredEvent struct {
	UserID       uint      `json:"user_id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
}

// LowStockEvent is published when an item ends up below the low-stock threshold.
type LowStockEvent struct {
	UserID     uint      `json:"user_id"`
	RetailerID uint      `json:"retailer_id"`
	ItemID     uint      `json:"item_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	DetectedAt time.Time `json:"detected_at"`
}

// Publisher sends v, JSON encoded, to the named queue.
type Publisher interface {
	Publish(ctx context.Context, queue string, v any) error
}

// Handler processes one message body. A returned error rejects the message.
type Handler func(ctx context.Context, body []byte) error
