package model

import (
	"time"

	"github.com/google/uuid"
)

type GalleryImageModel struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title      string     `gorm:"column:title;type:varchar(150);not null" json:"title"`
	Category   string     `gorm:"column:category;type:varchar(30);not null;index" json:"category"`
	ImageURL   string     `gorm:"column:image_url;type:text;not null" json:"image_url"`
	IsActive   bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	UploadedBy *uuid.UUID `gorm:"column:uploaded_by;type:uuid" json:"uploaded_by,omitempty"`
	UploadedAt time.Time  `gorm:"column:uploaded_at;autoCreateTime;index" json:"uploaded_at"`
}

func (GalleryImageModel) TableName() string {
	return "gallery_images"
}
