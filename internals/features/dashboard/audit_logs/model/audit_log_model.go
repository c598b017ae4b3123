package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLogModel struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AdminID    *uuid.UUID     `gorm:"column:admin_id;type:uuid;index" json:"admin_id,omitempty"`
	Action     string         `gorm:"column:action;type:varchar(60);not null;index" json:"action"`
	EntityType string         `gorm:"column:entity_type;type:varchar(60);index" json:"entity_type"`
	EntityID   *uuid.UUID     `gorm:"column:entity_id;type:uuid" json:"entity_id,omitempty"`
	Changes    datatypes.JSON `gorm:"column:changes;type:jsonb" json:"changes,omitempty"`
	IPAddress  string         `gorm:"column:ip_address;type:varchar(64)" json:"ip_address,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}
