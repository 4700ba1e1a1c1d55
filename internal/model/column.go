package model

import (
	"github.com/google/uuid"
)

// Column positions form a contiguous zero-based sequence within a board.
type Column struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index" json:"boardId"`
	Name     string    `gorm:"not null" json:"name"`
	Position int       `gorm:"not null" json:"position"`

	Board Board  `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"-"`
	Cards []Card `gorm:"foreignKey:ColumnID" json:"cards,omitempty"`
}
