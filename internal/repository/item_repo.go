package repository

import (
	"context"

	"agrimarket/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemRepository stores inventory items. Every lookup is scoped to the owning
// retailer profile, so another retailer's item reads as errs.ErrNotFound.
type ItemRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	Update(ctx context.Context, item *model.InventoryItem) error
	Delete(ctx context.Context, retailerID, id uint) error
	FindByID(ctx context.Context, retailerID, id uint) (*model.InventoryItem, error)
	FindByIDForUpdate(ctx context.Context, retailerID, id uint) (*model.InventoryItem, error)
	ListByRetailer(ctx context.Context, retailerID uint) ([]model.InventoryItem, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *itemRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, retailerID, id uint) error {
	res := GetDB(ctx, r.db).Where("id = ? AND retailer_id = ?", id, retailerID).Delete(&model.InventoryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *itemRepository) FindByID(ctx context.Context, retailerID, id uint) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := GetDB(ctx, r.db).First(&item, "id = ? AND retailer_id = ?", id, retailerID).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *itemRepository) FindByIDForUpdate(ctx context.Context, retailerID, id uint) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND retailer_id = ?", id, retailerID).First(&item).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// ListByRetailer returns the retailer's items in insertion (id) order.
func (r *itemRepository) ListByRetailer(ctx context.Context, retailerID uint) ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}
	if err := GetDB(ctx, r.db).Where("retailer_id = ?", retailerID).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
