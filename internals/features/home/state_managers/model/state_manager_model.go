package model

import (
	"time"

	"github.com/google/uuid"
)

type StateManagerModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	State     string    `gorm:"column:state;type:varchar(50);not null;uniqueIndex" json:"state"`
	Name      string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Mobile    string    `gorm:"column:mobile;type:varchar(15);not null" json:"mobile"`
	Email     string    `gorm:"column:email;type:varchar(150)" json:"email"`
	PhotoURL  string    `gorm:"column:photo_url;type:text" json:"photo_url"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StateManagerModel) TableName() string {
	return "state_project_managers"
}
