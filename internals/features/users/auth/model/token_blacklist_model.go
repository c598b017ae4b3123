package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenBlacklist holds HMAC digests of signed-out access tokens until they
// would have expired anyway.
type TokenBlacklist struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Token     string     `gorm:"column:token;type:text;not null;uniqueIndex" json:"-"`
	ExpiredAt time.Time  `gorm:"column:expired_at;not null;index" json:"expired_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
