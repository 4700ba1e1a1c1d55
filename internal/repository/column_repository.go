package repository

import (
	"context"
	"errors"

	"kanny/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColumnRepository struct {
	db *gorm.DB
}

type ColumnRepositoryInterface interface {
	Create(ctx context.Context, column *model.Column) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	Update(ctx context.Context, column *model.Column) error
	DeleteAndResequence(ctx context.Context, id uuid.UUID) error
	NextPosition(ctx context.Context, boardID uuid.UUID) (int, error)
}

var _ ColumnRepositoryInterface = (*ColumnRepository)(nil)

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Create(column).Error
}

func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Find(&columns).Error
	return columns, err
}

func (r *ColumnRepository) Update(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Save(column).Error
}

// DeleteAndResequence removes a column and closes the position gap among its
// sibling columns in the same transaction, so board ordering stays dense.
func (r *ColumnRepository) DeleteAndResequence(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var column model.Column
		if err := tx.First(&column, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrColumnNotFound
			}
			return err
		}

		if err := tx.Delete(&model.Column{}, "id = ?", id).Error; err != nil {
			return err
		}

		var siblings []model.Column
		if err := tx.Where("board_id = ?", column.BoardID).Order("position").Find(&siblings).Error; err != nil {
			return err
		}
		return writeColumnPositions(tx, siblings)
	})
}

// NextPosition returns the append position for a new column: one past the
// current maximum, or 0 for an empty board.
func (r *ColumnRepository) NextPosition(ctx context.Context, boardID uuid.UUID) (int, error) {
	var next struct {
		Next int
	}
	err := r.db.WithContext(ctx).Model(&model.Column{}).
		Select("COALESCE(MAX(position) + 1, 0) as next").
		Where("board_id = ?", boardID).
		Scan(&next).Error

	return next.Next, err
}
