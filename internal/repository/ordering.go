package repository

import (
	"kanny/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Helpers keeping container children densely ordered 0..n-1. A move is a
// splice: take the card out of its ordered sibling list, insert it at the
// target index, then write back sequential positions for everything.

func withoutCard(cards []model.Card, id uuid.UUID) []model.Card {
	remaining := make([]model.Card, 0, len(cards))
	for _, c := range cards {
		if c.ID != id {
			remaining = append(remaining, c)
		}
	}
	return remaining
}

func insertCardAt(cards []model.Card, card model.Card, index int) []model.Card {
	result := make([]model.Card, 0, len(cards)+1)
	result = append(result, cards[:index]...)
	result = append(result, card)
	result = append(result, cards[index:]...)
	return result
}

// writeCardPositions persists positions 0..n-1 for cards in display order,
// pinning each card to columnID. Rows already holding the right column and
// position are left untouched. Must run inside a transaction.
func writeCardPositions(tx *gorm.DB, cards []model.Card, columnID uuid.UUID) error {
	for i, c := range cards {
		if c.ColumnID == columnID && c.Position == i {
			continue
		}
		err := tx.Model(&model.Card{}).Where("id = ?", c.ID).
			Updates(map[string]interface{}{"column_id": columnID, "position": i}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// writeColumnPositions persists positions 0..n-1 for columns in display order.
// Must run inside a transaction.
func writeColumnPositions(tx *gorm.DB, columns []model.Column) error {
	for i, col := range columns {
		if col.Position == i {
			continue
		}
		err := tx.Model(&model.Column{}).Where("id = ?", col.ID).
			Update("position", i).Error
		if err != nil {
			return err
		}
	}
	return nil
}
