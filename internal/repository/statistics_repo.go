package repository

import (
	"context"
	"fmt"
	"time"

	"agrimarket/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatisticsRepository interface {
	GetItemDemand(ctx context.Context, retailerID uint, start, end time.Time, limit int) ([]model.ItemDemand, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

// GetItemDemand aggregates the retailer's orders per item, most ordered first.
// A limit <= 0 returns every item.
func (r *statisticsRepository) GetItemDemand(ctx context.Context, retailerID uint, start, end time.Time, limit int) ([]model.ItemDemand, error) {
	var rows []struct {
		Item          string
		OrderCount    int
		TotalQuantity int
		AvgPrice      string
		TotalValue    string
	}
	db := GetDB(ctx, r.db).Table("retailer_orders").
		Select("item, COUNT(*) as order_count, COALESCE(SUM(quantity), 0) as total_quantity, "+
			"CAST(COALESCE(AVG(price_per_kg), 0) AS TEXT) as avg_price, "+
			"CAST(COALESCE(SUM(quantity * price_per_kg), 0) AS TEXT) as total_value").
		Where("retailer_id = ? AND order_date >= ? AND order_date <= ?", retailerID, start, end).
		Group("item").
		Order("order_count DESC, item ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query item demand: %w", err)
	}

	out := make([]model.ItemDemand, 0, len(rows))
	for _, row := range rows {
		avg, _ := decimal.NewFromString(row.AvgPrice)
		total, _ := decimal.NewFromString(row.TotalValue)
		out = append(out, model.ItemDemand{
			Item:          row.Item,
			OrderCount:    row.OrderCount,
			TotalQuantity: row.TotalQuantity,
			AvgPricePerKg: avg.Round(2),
			TotalValue:    total.Round(2),
		})
	}
	return out, nil
}
