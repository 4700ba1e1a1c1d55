package repository

import (
	"context"
	"errors"

	"kanny/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

type CardRepositoryInterface interface {
	Create(ctx context.Context, card *model.Card) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error)
	GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Card, error)
	Update(ctx context.Context, card *model.Card) error
	DeleteAndResequence(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, cardID, targetColumnID uuid.UUID, position int) error
	NextPosition(ctx context.Context, columnID uuid.UUID) (int, error)
}

var _ CardRepositoryInterface = (*CardRepository)(nil)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).Where("column_id = ?", columnID).Order("position").Find(&cards).Error
	return cards, err
}

func (r *CardRepository) Update(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

// DeleteAndResequence removes a card and closes the position gap among the
// remaining cards of its column in the same transaction.
func (r *CardRepository) DeleteAndResequence(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card model.Card
		if err := tx.First(&card, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			return err
		}

		if err := tx.Delete(&model.Card{}, "id = ?", id).Error; err != nil {
			return err
		}

		var siblings []model.Card
		if err := tx.Where("column_id = ?", card.ColumnID).Order("position").Find(&siblings).Error; err != nil {
			return err
		}
		return writeCardPositions(tx, siblings, card.ColumnID)
	})
}

// Move relocates a card to position within targetColumnID and rewrites the
// positions of every affected sibling. All writes happen in one transaction:
// a concurrent reader never observes a duplicated or gapped ordering, and
// concurrent moves on the same column serialize at the store.
//
// The position is the index the card lands at in the list that no longer
// contains it; valid values are 0..len of that list inclusive.
func (r *CardRepository) Move(ctx context.Context, cardID, targetColumnID uuid.UUID, position int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card model.Card
		if err := tx.First(&card, "id = ?", cardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			return err
		}

		if card.ColumnID == targetColumnID {
			var siblings []model.Card
			if err := tx.Where("column_id = ?", card.ColumnID).Order("position").Find(&siblings).Error; err != nil {
				return err
			}
			remaining := withoutCard(siblings, card.ID)
			if position < 0 || position > len(remaining) {
				return ErrInvalidPosition
			}
			return writeCardPositions(tx, insertCardAt(remaining, card, position), targetColumnID)
		}

		var source []model.Card
		if err := tx.Where("column_id = ?", card.ColumnID).Order("position").Find(&source).Error; err != nil {
			return err
		}
		var target []model.Card
		if err := tx.Where("column_id = ?", targetColumnID).Order("position").Find(&target).Error; err != nil {
			return err
		}
		if position < 0 || position > len(target) {
			return ErrInvalidPosition
		}

		// Close the gap left behind, then splice into the destination.
		if err := writeCardPositions(tx, withoutCard(source, card.ID), card.ColumnID); err != nil {
			return err
		}
		return writeCardPositions(tx, insertCardAt(target, card, position), targetColumnID)
	})
}

// NextPosition returns the append position for a new card: one past the
// current maximum, or 0 for an empty column.
func (r *CardRepository) NextPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	var next struct {
		Next int
	}
	err := r.db.WithContext(ctx).Model(&model.Card{}).
		Select("COALESCE(MAX(position) + 1, 0) as next").
		Where("column_id = ?", columnID).
		Scan(&next).Error

	return next.Next, err
}
