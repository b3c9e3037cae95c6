package repository

import (
	"context"
	"time"

	"agrimarket/internal/model"

	"gorm.io/gorm"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByHash(ctx context.Context, hash string) (*model.RefreshToken, error)
	// Revoke marks the token revoked. revoked is false when it already was,
	// which lets callers detect a second redemption.
	Revoke(ctx context.Context, id uint) (revoked bool, err error)
	RevokeAllForUser(ctx context.Context, userID uint) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return GetDB(ctx, r.db).Create(token).Error
}

func (r *refreshTokenRepository) FindByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	var t model.RefreshToken
	if err := GetDB(ctx, r.db).First(&t, "token_hash = ?", hash).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, id uint) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) error {
	return GetDB(ctx, r.db).Model(&model.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now()).Error
}
