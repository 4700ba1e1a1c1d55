package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the server-side record backing a refresh JWT. The ID is
// the random token_id claim embedded in the signed token; a refresh token
// is redeemable only while its record exists and is unexpired.
type RefreshToken struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"not null" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
