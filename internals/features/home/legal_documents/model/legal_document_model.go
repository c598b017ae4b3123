package model

import (
	"time"

	"github.com/google/uuid"
)

// LegalDocumentModel keeps one current file per document type.
type LegalDocumentModel struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string     `gorm:"column:name;type:varchar(50);not null;uniqueIndex" json:"name"`
	FileURL    string     `gorm:"column:file_url;type:text;not null" json:"file_url"`
	UploadedBy *uuid.UUID `gorm:"column:uploaded_by;type:uuid" json:"uploaded_by,omitempty"`
	UploadedAt time.Time  `gorm:"column:uploaded_at;not null" json:"uploaded_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LegalDocumentModel) TableName() string {
	return "legal_documents"
}
