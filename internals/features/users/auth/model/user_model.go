package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel is a back-office account. Every row is an admin.
type UserModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	UserName  string    `gorm:"column:user_name;size:50;not null" json:"user_name"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	AvatarURL *string   `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	GoogleID  *string   `gorm:"column:google_id;size:255;uniqueIndex" json:"-"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}
