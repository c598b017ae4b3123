package dto

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/dashboard/audit_logs/model"
	"suryaghar_backend/internals/features/users/auth/session"
)

type Filter struct {
	Action     string
	EntityType string
	AdminID    *uuid.UUID
	From       *time.Time
	To         *time.Time
}

func encode(changes map[string]any) datatypes.JSON {
	if len(changes) == 0 {
		return nil
	}
	b, err := json.Marshal(changes)
	if err != nil {
		log.Printf("[WARN] audit changes not encodable: %v", err)
		return nil
	}
	return datatypes.JSON(b)
}

func FromAdminAction(a events.AdminAction) model.AuditLogModel {
	return model.AuditLogModel{
		AdminID:    a.AdminID,
		Action:     a.Action,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Changes:    encode(a.Changes),
		IPAddress:  a.IP,
		CreatedAt:  a.At,
	}
}

// FromSession records sign-ins and sign-outs against the users table.
func FromSession(ev session.Event) model.AuditLogModel {
	action := "LOGIN"
	if ev.Type == session.TopicSignedOut {
		action = "LOGOUT"
	}
	id := ev.Identity.ID
	return model.AuditLogModel{
		AdminID:    &id,
		Action:     action,
		EntityType: "users",
		EntityID:   &id,
		Changes:    encode(map[string]any{"method": ev.Method, "email": ev.Identity.Email}),
		IPAddress:  ev.IP,
		CreatedAt:  ev.At,
	}
}

type AuditLogResponse struct {
	ID         uuid.UUID       `json:"id"`
	AdminID    *uuid.UUID      `json:"admin_id,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   *uuid.UUID      `json:"entity_id,omitempty"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	IPAddress  string          `json:"ip_address,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func FromModel(m model.AuditLogModel) AuditLogResponse {
	r := AuditLogResponse{
		ID:         m.ID,
		AdminID:    m.AdminID,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		IPAddress:  m.IPAddress,
		CreatedAt:  m.CreatedAt,
	}
	if len(m.Changes) > 0 {
		r.Changes = json.RawMessage(m.Changes)
	}
	return r
}

func FromModels(rows []model.AuditLogModel) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

func NormalizeAction(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
