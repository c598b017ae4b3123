package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"suryaghar_backend/internals/features/home/videos/model"
	"suryaghar_backend/internals/helpers/validation"
)

const InvalidURLMessage = "Invalid YouTube URL. Please use format: https://youtu.be/VIDEO_ID or https://youtube.com/watch?v=VIDEO_ID"

type VideoRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	YouTubeURL string `json:"youtube_url" validate:"required"`
	IsActive   *bool  `json:"is_active"`
}

var Messages = validation.Messages{
	"title.required":       "Please fill all required fields",
	"youtube_url.required": "Please fill all required fields",
}

func (r *VideoRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.YouTubeURL = strings.TrimSpace(r.YouTubeURL)
}

// Validate runs the field rules and then requires a recognisable video id.
func (r VideoRequest) Validate() (string, validation.Errors) {
	if errs := validation.Check(r, Messages); errs != nil {
		return "", errs
	}
	id := ExtractVideoID(r.YouTubeURL)
	if id == "" {
		return "", validation.Errors{"youtube_url": {InvalidURLMessage}}
	}
	return id, nil
}

func (r VideoRequest) ToModel(videoID string) model.VideoModel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.VideoModel{
		Title:      r.Title,
		YouTubeURL: r.YouTubeURL,
		VideoID:    videoID,
		IsActive:   active,
	}
}

func (r VideoRequest) Fields(videoID string) map[string]any {
	f := map[string]any{
		"title":       r.Title,
		"youtube_url": r.YouTubeURL,
		"video_id":    videoID,
	}
	if r.IsActive != nil {
		f["is_active"] = *r.IsActive
	}
	return f
}

type MoveRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type VideoResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	YouTubeURL   string    `json:"youtube_url"`
	VideoID      string    `json:"video_id"`
	EmbedURL     string    `json:"embed_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromModel(m model.VideoModel) VideoResponse {
	return VideoResponse{
		ID:           m.ID,
		Title:        m.Title,
		YouTubeURL:   m.YouTubeURL,
		VideoID:      m.VideoID,
		EmbedURL:     EmbedURL(m.VideoID),
		ThumbnailURL: ThumbnailURL(m.VideoID),
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

func FromModels(rows []model.VideoModel) []VideoResponse {
	out := make([]VideoResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
