package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/features/jobs/job_applications/model"
	"suryaghar_backend/internals/helpers/validation"
)

const FieldResume = "resume"

type ApplyForm struct {
	FullName string `json:"full_name" validate:"required,min=3,person_name"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"required,indian_mobile"`
	WhatsApp string `json:"whatsapp" validate:"required,indian_mobile"`
	City     string `json:"city" validate:"required,min=2"`
	Message  string `json:"message" validate:"omitempty,max=2000"`
}

var ApplyMessages = validation.Messages{
	"full_name.person_name":  "Name can only contain letters and spaces",
	"whatsapp.required":      "WhatsApp number is required",
	"whatsapp.indian_mobile": "Invalid WhatsApp number",
	"city.required":          "City is required",
}

func ApplyFormFrom(get func(string) string) ApplyForm {
	t := func(k string) string { return strings.TrimSpace(get(k)) }
	return ApplyForm{
		FullName: t("full_name"),
		Email:    strings.ToLower(t("email")),
		Mobile:   t("mobile"),
		WhatsApp: t("whatsapp"),
		City:     t("city"),
		Message:  t("message"),
	}
}

func (f ApplyForm) ToModel(jobID uuid.UUID) model.JobApplicationModel {
	return model.JobApplicationModel{
		JobID:    jobID,
		FullName: f.FullName,
		Email:    f.Email,
		Mobile:   f.Mobile,
		WhatsApp: f.WhatsApp,
		City:     f.City,
		Message:  f.Message,
		Status:   constants.JobApplicationApplied,
	}
}

const (
	SortRecent = "recent"
	SortRating = "rating"
	SortStatus = "status"
)

type Filter struct {
	JobID  *uuid.UUID
	Status string
	Q      string
	Sort   string
}

type StatusRequest struct {
	Status string  `json:"status" validate:"required,application_status"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

type RatingRequest struct {
	Rating int     `json:"rating" validate:"required,min=1,max=5"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1"`
	Status string   `json:"status" validate:"required,application_status"`
}

type ApplicationResponse struct {
	ID             uuid.UUID `json:"id"`
	JobID          uuid.UUID `json:"job_id"`
	JobTitle       string    `json:"job_title,omitempty"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Mobile         string    `json:"mobile"`
	WhatsApp       string    `json:"whatsapp"`
	City           string    `json:"city"`
	Message        string    `json:"message,omitempty"`
	ResumeURL      string    `json:"resume_url,omitempty"`
	ResumeFileName string    `json:"resume_file_name,omitempty"`
	Status         string    `json:"status"`
	Rating         *int      `json:"rating,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromModel(m model.JobApplicationModel) ApplicationResponse {
	return ApplicationResponse{
		ID:             m.ID,
		JobID:          m.JobID,
		FullName:       m.FullName,
		Email:          m.Email,
		Mobile:         m.Mobile,
		WhatsApp:       m.WhatsApp,
		City:           m.City,
		Message:        m.Message,
		ResumeURL:      m.ResumeURL,
		ResumeFileName: m.ResumeFileName,
		Status:         m.Status,
		Rating:         m.Rating,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
	}
}

func FromModels(rows []model.JobApplicationModel) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

// Stats counts applications per status; Total covers all of them.
type Stats struct {
	Total       int64 `json:"total"`
	Applied     int64 `json:"applied"`
	Shortlisted int64 `json:"shortlisted"`
	Rejected    int64 `json:"rejected"`
	Accepted    int64 `json:"accepted"`
	OnHold      int64 `json:"on_hold"`
}
