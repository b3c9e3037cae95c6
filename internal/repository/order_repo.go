package repository

import (
	"context"

	"agrimarket/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.RetailerOrder) error
	Update(ctx context.Context, order *model.RetailerOrder) error
	Delete(ctx context.Context, retailerID, id uint) error
	FindByID(ctx context.Context, retailerID, id uint) (*model.RetailerOrder, error)
	List(ctx context.Context, retailerID uint, page, limit int) ([]model.RetailerOrder, int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.RetailerOrder) error {
	return GetDB(ctx, r.db).Create(order).Error
}

func (r *orderRepository) Update(ctx context.Context, order *model.RetailerOrder) error {
	return GetDB(ctx, r.db).Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, retailerID, id uint) error {
	res := GetDB(ctx, r.db).Where("id = ? AND retailer_id = ?", id, retailerID).Delete(&model.RetailerOrder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, retailerID, id uint) (*model.RetailerOrder, error) {
	var order model.RetailerOrder
	if err := GetDB(ctx, r.db).First(&order, "id = ? AND retailer_id = ?", id, retailerID).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, retailerID uint, page, limit int) ([]model.RetailerOrder, int64, error) {
	orders := []model.RetailerOrder{}
	var total int64

	db := GetDB(ctx, r.db).Model(&model.RetailerOrder{}).Where("retailer_id = ?", retailerID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("order_date DESC, id DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
