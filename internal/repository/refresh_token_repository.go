package repository

import (
	"context"
	"errors"

	"kanny/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	GetByID(ctx context.Context, id string) (*model.RefreshToken, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserAndID(ctx context.Context, userID uuid.UUID, id string) error
	Rotate(ctx context.Context, consumedID string, replacement *model.RefreshToken) error
}

var _ RefreshTokenRepositoryInterface = (*RefreshTokenRepository)(nil)

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *RefreshTokenRepository) GetByID(ctx context.Context, id string) (*model.RefreshToken, error) {
	var token model.RefreshToken
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.RefreshToken{}, "id = ?", id).Error
}

func (r *RefreshTokenRepository) DeleteByUserAndID(ctx context.Context, userID uuid.UUID, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.RefreshToken{}).Error
}

// Rotate invalidates a consumed refresh token and records its replacement in
// one transaction. A redeemed token is never left replayable: either the
// rotation commits and only the new token exists, or nothing changes.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, consumedID string, replacement *model.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.RefreshToken{}, "id = ?", consumedID).Error; err != nil {
			return err
		}
		return tx.Create(replacement).Error
	})
}
