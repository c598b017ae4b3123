package model

import (
	"time"

	"github.com/google/uuid"
)

type VideoModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title        string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	YouTubeURL   string    `gorm:"column:youtube_url;type:text;not null" json:"youtube_url"`
	VideoID      string    `gorm:"column:video_id;type:varchar(20);not null" json:"video_id"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0;index" json:"display_order"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (VideoModel) TableName() string {
	return "videos"
}
