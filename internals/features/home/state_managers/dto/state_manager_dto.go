package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"suryaghar_backend/internals/features/home/state_managers/model"
	helper "suryaghar_backend/internals/helpers"
	"suryaghar_backend/internals/helpers/validation"
)

const FieldPhoto = "photo"

type ManagerForm struct {
	State    string `json:"state" validate:"required,indian_state"`
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Mobile   string `json:"mobile" validate:"required,indian_mobile"`
	Email    string `json:"email" validate:"omitempty,email"`
	IsActive *bool  `json:"is_active"`
}

var Messages = validation.Messages{
	"state.required": "Please fill all required fields",
	"name.required":  "Please fill all required fields",
	"state":          "Please select a valid state",
}

func ManagerFormFrom(get func(string) string) ManagerForm {
	t := func(k string) string { return strings.TrimSpace(get(k)) }
	f := ManagerForm{
		State:  t("state"),
		Name:   t("name"),
		Mobile: t("mobile"),
		Email:  strings.ToLower(t("email")),
	}
	if raw := t("is_active"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			f.IsActive = &b
		}
	}
	return f
}

func (f ManagerForm) ToModel() model.StateManagerModel {
	active := true
	if f.IsActive != nil {
		active = *f.IsActive
	}
	return model.StateManagerModel{State: f.State, Name: f.Name, Mobile: f.Mobile, Email: f.Email, IsActive: active}
}

func (f ManagerForm) Fields() map[string]any {
	out := map[string]any{"state": f.State, "name": f.Name, "mobile": f.Mobile, "email": f.Email}
	if f.IsActive != nil {
		out["is_active"] = *f.IsActive
	}
	return out
}

type ToggleRequest struct {
	IsActive *bool `json:"is_active"`
}

type ManagerResponse struct {
	ID           uuid.UUID `json:"id"`
	State        string    `json:"state"`
	Name         string    `json:"name"`
	Mobile       string    `json:"mobile"`
	Email        string    `json:"email,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	WhatsAppLink string    `json:"whatsapp_link"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromModel(m model.StateManagerModel) ManagerResponse {
	return ManagerResponse{
		ID:           m.ID,
		State:        m.State,
		Name:         m.Name,
		Mobile:       m.Mobile,
		Email:        m.Email,
		PhotoURL:     m.PhotoURL,
		IsActive:     m.IsActive,
		WhatsAppLink: helper.ManagerWhatsAppLink(m.Mobile),
		CreatedAt:    m.CreatedAt,
	}
}

func FromModels(rows []model.StateManagerModel) []ManagerResponse {
	out := make([]ManagerResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
