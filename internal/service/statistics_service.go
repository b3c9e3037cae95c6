package service

import (
	"context"
	"time"

	"agrimarket/internal/model"
	"agrimarket/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	DefaultSummaryDays = 30
	MaxSummaryDays     = 365
	topDemandItems     = 5
)

type StatisticsService interface {
	// GetOrderSummary aggregates the caller's orders over the last days days.
	GetOrderSummary(ctx context.Context, userID uint, days int) (*model.OrderSummary, error)
}

type statisticsService struct {
	statsRepo repository.StatisticsRepository
	profiles  repository.ProfileRepository
	now       func() time.Time
}

func NewStatisticsService(statsRepo repository.StatisticsRepository, profiles repository.ProfileRepository) StatisticsService {
	return &statisticsService{statsRepo: statsRepo, profiles: profiles, now: time.Now}
}

func (s *statisticsService) GetOrderSummary(ctx context.Context, userID uint, days int) (*model.OrderSummary, error) {
	if days <= 0 {
		days = DefaultSummaryDays
	}
	if days > MaxSummaryDays {
		days = MaxSummaryDays
	}

	rid, err := retailerID(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}

	end := s.now().UTC()
	start := end.AddDate(0, 0, -days)

	demand, err := s.statsRepo.GetItemDemand(ctx, rid, start, end, 0)
	if err != nil {
		return nil, err
	}

	summary := &model.OrderSummary{
		TotalValue:         decimal.Zero,
		TimeRangeStartDate: start,
		TimeRangeEndDate:   end,
	}
	for _, d := range demand {
		summary.TotalOrders += d.OrderCount
		summary.TotalQuantity += d.TotalQuantity
		summary.TotalValue = summary.TotalValue.Add(d.TotalValue)
	}
	if len(demand) > topDemandItems {
		demand = demand[:topDemandItems]
	}
	summary.Items = demand
	return summary, nil
}
