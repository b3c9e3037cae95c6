package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSummary aggregates a retailer's orders over a time range.
type OrderSummary struct {
	TotalOrders        int             `json:"total_orders"`
	TotalQuantity      int             `json:"total_quantity"`
	TotalValue         decimal.Decimal `json:"total_value"`
	Items              []ItemDemand    `json:"items"`
	TimeRangeStartDate time.Time       `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time       `json:"time_range_end_date"`
}

// ItemDemand is the per-item order aggregate, ranked by order count.
type ItemDemand struct {
	Item          string          `json:"item"`
	OrderCount    int             `json:"order_count"`
	TotalQuantity int             `json:"total_quantity"`
	AvgPricePerKg decimal.Decimal `json:"avg_price_per_kg"`
	TotalValue    decimal.Decimal `json:"total_value"`
}
