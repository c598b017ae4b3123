package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type NotificationModel struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title      string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Message    string         `gorm:"column:message;type:text" json:"message"`
	Type       string         `gorm:"column:type;type:varchar(40);not null;index" json:"type"` // application | job | job_application
	EntityType string         `gorm:"column:entity_type;type:varchar(60)" json:"entity_type"`
	EntityID   *uuid.UUID     `gorm:"column:entity_id;type:uuid" json:"entity_id,omitempty"`
	Tags       pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`
	IsRead     bool           `gorm:"column:is_read;not null;default:false;index" json:"is_read"`
	ReadAt     *time.Time     `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
