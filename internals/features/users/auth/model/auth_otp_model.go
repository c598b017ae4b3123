package model

import (
	"time"

	"github.com/google/uuid"
)

// AuthOTP is a one-time sign-up code. Only the bcrypt hash is stored.
type AuthOTP struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email      string     `gorm:"column:email;size:255;not null;index" json:"email"`
	CodeHash   string     `gorm:"column:code_hash;not null" json:"-"`
	Attempts   int        `gorm:"column:attempts;not null;default:0" json:"attempts"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null" json:"expires_at"`
	ConsumedAt *time.Time `gorm:"column:consumed_at" json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AuthOTP) TableName() string {
	return "auth_otps"
}
