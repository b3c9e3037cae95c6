package repository

import (
	"context"

	"agrimarket/internal/model"

	"gorm.io/gorm"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *model.Alert) error
	ListByUser(ctx context.Context, userID uint, unseenOnly bool, limit int) ([]model.Alert, error)
	MarkSeen(ctx context.Context, userID, id uint) error
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *model.Alert) error {
	return GetDB(ctx, r.db).Create(alert).Error
}

func (r *alertRepository) ListByUser(ctx context.Context, userID uint, unseenOnly bool, limit int) ([]model.Alert, error) {
	alerts := []model.Alert{}
	db := GetDB(ctx, r.db).Where("user_id = ?", userID)
	if unseenOnly {
		db = db.Where("seen = ?", false)
	}
	if err := db.Order("created_at desc, id desc").Limit(limit).Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) MarkSeen(ctx context.Context, userID, id uint) error {
	res := GetDB(ctx, r.db).Model(&model.Alert{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("seen", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	return nil
}
