package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"agrimarket/internal/errs"
	"agrimarket/internal/inventory"
	"agrimarket/internal/model"
	"agrimarket/internal/queue"
	"agrimarket/internal/repository"

	"go.uber.org/zap"
)

// DTOs
type CreateItemRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Item     string `json:"item" binding:"max=100"`
	Quantity *int   `json:"quantity" binding:"required,gte=0"`
}

type UpdateItemRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Item     *string `json:"item" binding:"omitempty,max=100"`
	Quantity *int    `json:"quantity" binding:"omitempty,gte=0"`
}

type InventoryService interface {
	ListItems(ctx context.Context, userID uint) ([]model.InventoryItem, error)
	GetItem(ctx context.Context, userID, id uint) (*model.InventoryItem, error)
	CreateItem(ctx context.Context, userID uint, req CreateItemRequest) (*model.InventoryItem, error)
	UpdateItem(ctx context.Context, userID, id uint, req UpdateItemRequest) (*model.InventoryItem, error)
	DeleteItem(ctx context.Context, userID, id uint) error
	// View returns the searched and filtered items plus stats over all of
	// the retailer's items.
	View(ctx context.Context, userID uint, search string, filter inventory.Filter) (inventory.View, error)
}

type inventoryService struct {
	itemRepo  repository.ItemRepository
	profiles  repository.ProfileRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	events    queue.Publisher
	log       *zap.Logger
}

func NewInventoryService(
	itemRepo repository.ItemRepository,
	profiles repository.ProfileRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	events queue.Publisher,
	log *zap.Logger,
) InventoryService {
	return &inventoryService{
		itemRepo:  itemRepo,
		profiles:  profiles,
		auditRepo: auditRepo,
		txManager: txManager,
		events:    events,
		log:       log,
	}
}

// retailerID resolves the retailer profile that owns the caller's stock.
func retailerID(ctx context.Context, profiles repository.ProfileRepository, userID uint) (uint, error) {
	p, err := profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return 0, fmt.Errorf("retailer profile: %w", errs.ErrNotFound)
		}
		return 0, err
	}
	if p.Role != model.RoleRetailer {
		return 0, errs.ErrForbidden
	}
	return p.ID, nil
}

func (s *inventoryService) ListItems(ctx context.Context, userID uint) ([]model.InventoryItem, error) {
	rid, err := retailerID(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	return s.itemRepo.ListByRetailer(ctx, rid)
}

func (s *inventoryService) View(ctx context.Context, userID uint, search string, filter inventory.Filter) (inventory.View, error) {
	items, err := s.ListItems(ctx, userID)
	if err != nil {
		return inventory.View{}, err
	}
	return inventory.DeriveView(items, search, filter), nil
}

func (s *inventoryService) GetItem(ctx context.Context, userID, id uint) (*model.InventoryItem, error) {
	rid, err := retailerID(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	return s.itemRepo.FindByID(ctx, rid, id)
}

func (s *inventoryService) CreateItem(ctx context.Context, userID uint, req CreateItemRequest) (*model.InventoryItem, error) {
	v := &errs.ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		v.Add("name", "Field required", "missing")
	}
	if req.Quantity == nil {
		v.Add("quantity", "Field required", "missing")
	} else if *req.Quantity < 0 {
		v.Add("quantity", "Input should be greater than or equal to 0", "greater_than_equal")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	rid, err := retailerID(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}

	item := &model.InventoryItem{
		RetailerID: rid,
		Name:       strings.TrimSpace(req.Name),
		Item:       req.Item,
		Quantity:   *req.Quantity,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.itemRepo.Create(txCtx, item); err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}
		return s.audit(txCtx, userID, model.ActionCreateItem, item, req)
	})
	if err != nil {
		return nil, err
	}

	s.checkLowStock(ctx, userID, item)
	return item, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, userID, id uint, req UpdateItemRequest) (*model.InventoryItem, error) {
	v := &errs.ValidationError{}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		v.Add("name", "Field required", "missing")
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		v.Add("quantity", "Input should be greater than or equal to 0", "greater_than_equal")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	rid, err := retailerID(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}

	var item *model.InventoryItem
	quantityChanged := false
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		item, err = s.itemRepo.FindByIDForUpdate(txCtx, rid, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			item.Name = strings.TrimSpace(*req.Name)
		}
		if req.Item != nil {
			item.Item = *req.Item
		}
		if req.Quantity != nil && *req.Quantity != item.Quantity {
			item.Quantity = *req.Quantity
			quantityChanged = true
		}
		if err := s.itemRepo.Update(txCtx, item); err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		return s.audit(txCtx, userID, model.ActionUpdateItem, item, req)
	})
	if err != nil {
		return nil, err
	}

	if quantityChanged {
		s.checkLowStock(ctx, userID, item)
	}
	return item, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, userID, id uint) error {
	rid, err := retailerID(ctx, s.profiles, userID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.itemRepo.FindByID(txCtx, rid, id)
		if err != nil {
			return err
		}
		if err := s.itemRepo.Delete(txCtx, rid, id); err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		return s.audit(txCtx, userID, model.ActionDeleteItem, item, nil)
	})
}

func (s *inventoryService) audit(ctx context.Context, userID uint, action string, item *model.InventoryItem, payload any) error {
	details, _ := json.Marshal(map[string]any{"quantity": item.Quantity, "request": payload})
	uid := userID
	if err := s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     &uid,
		Action:     action,
		EntityID:   fmt.Sprint(item.ID),
		EntityName: item.Name,
		Details:    string(details),
	}); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *inventoryService) checkLowStock(ctx context.Context, userID uint, item *model.InventoryItem) {
	if inventory.Classify(item.Quantity) != inventory.BandLow {
		return
	}
	publishEvent(ctx, s.events, s.log, queue.LowStockQueue, queue.LowStockEvent{
		UserID:     userID,
		RetailerID: item.RetailerID,
		ItemID:     item.ID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		DetectedAt: time.Now().UTC(),
	})
}
