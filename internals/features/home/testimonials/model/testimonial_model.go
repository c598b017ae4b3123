package model

import (
	"time"

	"github.com/google/uuid"
)

type TestimonialModel struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string     `gorm:"column:name;type:varchar(100);not null" json:"name"`
	State        string     `gorm:"column:state;type:varchar(50);not null" json:"state"`
	Position     string     `gorm:"column:position;type:varchar(100);not null" json:"position"`
	ImageURL     string     `gorm:"column:image_url;type:text" json:"image_url"`
	Review       string     `gorm:"column:review;type:text;not null" json:"review"`
	Rating       int        `gorm:"column:rating;not null;default:5" json:"rating"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	DisplayOrder int        `gorm:"column:display_order;not null;default:0;index" json:"display_order"`
	UploadedBy   *uuid.UUID `gorm:"column:uploaded_by;type:uuid" json:"uploaded_by,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TestimonialModel) TableName() string {
	return "testimonials"
}
