package model

import (
	"github.com/google/uuid"
)

// Card positions form a contiguous zero-based sequence within a column.
type Card struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index" json:"columnId"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`
	Position    int       `gorm:"not null" json:"position"`

	Column Column `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"-"`
}
