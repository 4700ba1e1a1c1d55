package repository

import (
	"context"
	"errors"

	"kanny/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	CreateWithColumns(ctx context.Context, board *model.Board, columns []model.Column) error
	CreateColumns(ctx context.Context, columns []model.Column) error
	GetOwned(ctx context.Context, userID uuid.UUID) ([]model.Board, error)
	FirstOwned(ctx context.Context, userID uuid.UUID) (*model.Board, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetByIDWithChildren(ctx context.Context, id uuid.UUID) (*model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// CreateWithColumns creates a board and its initial columns in one transaction
// so a board is never visible without its default columns.
func (r *BoardRepository) CreateWithColumns(ctx context.Context, board *model.Board, columns []model.Column) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		for i := range columns {
			columns[i].BoardID = board.ID
		}
		if len(columns) == 0 {
			return nil
		}
		return tx.Create(&columns).Error
	})
}

func (r *BoardRepository) CreateColumns(ctx context.Context, columns []model.Column) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&columns).Error
}

func (r *BoardRepository) GetOwned(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) FirstOwned(ctx context.Context, userID uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.withChildren(ctx).Where("user_id = ?", userID).Order("created_at").First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) GetByIDWithChildren(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.withChildren(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Board{}, "id = ?", id).Error
}

func (r *BoardRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Columns.Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		})
}
