package dto

import (
	"time"

	"github.com/google/uuid"

	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/home/notifications/model"
)

type Filter struct {
	UnreadOnly bool
	Type       string
}

type NotificationResponse struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Type       string     `json:"type"`
	EntityType string     `json:"entity_type"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	Tags       []string   `json:"tags"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  string     `json:"created_at"`
}

// FromSubmission turns a public form event into a stored notification.
func FromSubmission(s events.Submission) model.NotificationModel {
	m := model.NotificationModel{
		Title:      s.Title,
		Message:    s.Message,
		Type:       s.Type,
		EntityType: s.EntityType,
		Tags:       s.Tags,
	}
	if s.EntityID != uuid.Nil {
		id := s.EntityID
		m.EntityID = &id
	}
	if !s.At.IsZero() {
		m.CreatedAt = s.At
	}
	return m
}

func FromModel(m model.NotificationModel) NotificationResponse {
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	return NotificationResponse{
		ID:         m.ID,
		Title:      m.Title,
		Message:    m.Message,
		Type:       m.Type,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Tags:       tags,
		IsRead:     m.IsRead,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func FromModels(rows []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
