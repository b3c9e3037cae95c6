package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"agrimarket/internal/errs"
	"agrimarket/internal/model"
	"agrimarket/internal/repository"
	"agrimarket/pkg/pagination"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	Source      string           `json:"source" binding:"required,max=150"`
	Destination string           `json:"destination" binding:"required,max=150"`
	Item        string           `json:"item" binding:"required,max=100"`
	Quantity    *int             `json:"quantity" binding:"required,gte=0"`
	PricePerKg  *decimal.Decimal `json:"price_per_kg" binding:"required"`
	StartTime   *time.Time       `json:"start_time"`
	OrderDate   *time.Time       `json:"order_date"`
}

type UpdateOrderRequest struct {
	Source      *string          `json:"source" binding:"omitempty,max=150"`
	Destination *string          `json:"destination" binding:"omitempty,max=150"`
	Item        *string          `json:"item" binding:"omitempty,max=100"`
	Quantity    *int             `json:"quantity" binding:"omitempty,gte=0"`
	PricePerKg  *decimal.Decimal `json:"price_per_kg"`
	StartTime   *time.Time       `json:"start_time"`
	OrderDate   *time.Time       `json:"order_date"`
}

type OrderService interface {
	ListOrders(ctx context.Context, userID uint, page, limit int) ([]model.RetailerOrder, int64, error)
	GetOrder(ctx context.Context, userID, id uint) (*model.RetailerOrder, error)
	CreateOrder(ctx context.Context, userID uint, req CreateOrderRequest) (*model.RetailerOrder, error)
	UpdateOrder(ctx context.Context, userID, id uint, req UpdateOrderRequest) (*model.RetailerOrder, error)
	DeleteOrder(ctx context.Context, userID, id uint) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	profiles  repository.ProfileRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	now       func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	profiles repository.ProfileRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		profiles:  profiles,
		auditRepo: auditRepo,
		txManager: txManager,
		now:       time.Now,
	}
}

func (s *orderService) ListOrders(ctx context.Context, userID uint, page, limit int) ([]model.RetailerOrder, int64, error) {
	rid, err := retailerID(ctx, s.profiles, userID)
	if err != nil {
		return nil, 0, err
	}
	p := pagination.Normalize(page, limit)
	return s.orderRepo.List(ctx, rid, p.Page, p.Limit)
}

func (s *orderService) GetOrder(ctx context.Context, userID, id uint) (*model.RetailerOrder, error) {
	rid, err := retailerID(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, rid, id)
}

func validatePrice(v *errs.ValidationError, p *decimal.Decimal) {
	if p != nil && p.IsNegative() {
		v.Add("price_per_kg", "Input should be greater than or equal to 0", "greater_than_equal")
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID uint, req CreateOrderRequest) (*model.RetailerOrder, error) {
	v := &errs.ValidationError{}
	required := []struct{ field, val string }{
		{"source", req.Source},
		{"destination", req.Destination},
		{"item", req.Item},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			v.Add(r.field, "Field required", "missing")
		}
	}
	if req.Quantity == nil {
		v.Add("quantity", "Field required", "missing")
	} else if *req.Quantity < 0 {
		v.Add("quantity", "Input should be greater than or equal to 0", "greater_than_equal")
	}
	if req.PricePerKg == nil {
		v.Add("price_per_kg", "Field required", "missing")
	}
	validatePrice(v, req.PricePerKg)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	rid, err := retailerID(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}

	orderDate := s.now().UTC()
	if req.OrderDate != nil {
		orderDate = req.OrderDate.UTC()
	}
	order := &model.RetailerOrder{
		RetailerID:  rid,
		Source:      strings.TrimSpace(req.Source),
		Destination: strings.TrimSpace(req.Destination),
		Item:        strings.TrimSpace(req.Item),
		Quantity:    *req.Quantity,
		PricePerKg:  req.PricePerKg.Round(2),
		StartTime:   req.StartTime,
		OrderDate:   orderDate,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return s.audit(txCtx, userID, model.ActionCreateOrder, order, req)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, userID, id uint, req UpdateOrderRequest) (*model.RetailerOrder, error) {
	v := &errs.ValidationError{}
	if req.Quantity != nil && *req.Quantity < 0 {
		v.Add("quantity", "Input should be greater than or equal to 0", "greater_than_equal")
	}
	validatePrice(v, req.PricePerKg)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	rid, err := retailerID(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}

	var order *model.RetailerOrder
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByID(txCtx, rid, id)
		if err != nil {
			return err
		}
		if req.Source != nil {
			order.Source = strings.TrimSpace(*req.Source)
		}
		if req.Destination != nil {
			order.Destination = strings.TrimSpace(*req.Destination)
		}
		if req.Item != nil {
			order.Item = strings.TrimSpace(*req.Item)
		}
		if req.Quantity != nil {
			order.Quantity = *req.Quantity
		}
		if req.PricePerKg != nil {
			order.PricePerKg = req.PricePerKg.Round(2)
		}
		if req.StartTime != nil {
			order.StartTime = req.StartTime
		}
		if req.OrderDate != nil {
			order.OrderDate = req.OrderDate.UTC()
		}
		if err := s.orderRepo.Update(txCtx, order); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return s.audit(txCtx, userID, model.ActionUpdateOrder, order, req)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, userID, id uint) error {
	rid, err := retailerID(ctx, s.profiles, userID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.FindByID(txCtx, rid, id)
		if err != nil {
			return err
		}
		if err := s.orderRepo.Delete(txCtx, rid, id); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return s.audit(txCtx, userID, model.ActionDeleteOrder, order, nil)
	})
}

func (s *orderService) audit(ctx context.Context, userID uint, action string, order *model.RetailerOrder, payload any) error {
	details, _ := json.Marshal(payload)
	uid := userID
	return s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     &uid,
		Action:     action,
		EntityID:   fmt.Sprint(order.ID),
		EntityName: order.Item,
		Details:    string(details),
	})
}
