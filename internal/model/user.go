package model

import (
	"time"

	"github.com/google/uuid"
)

// User authenticates either with a password or through Firebase;
// at least one of PasswordHash/FirebaseUID is always set.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash *string   `json:"-"`
	FirebaseUID  *string   `gorm:"uniqueIndex" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Avatar       *string   `json:"avatar,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
