package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/features/jobs/jobs/model"
	helper "suryaghar_backend/internals/helpers"
	"suryaghar_backend/internals/helpers/validation"
)

/* ==========================
   Posting form
========================== */

type JobForm struct {
	Title            string `json:"title" validate:"required,min=3,max=150"`
	Category         string `json:"category" validate:"required,job_category"`
	JobType          string `json:"job_type" validate:"required,job_type"`
	Location         string `json:"location" validate:"required,min=2"`
	Salary           string `json:"salary" validate:"omitempty,max=100"`
	Description      string `json:"description" validate:"required,min=10"`
	Requirements     string `json:"requirements"`
	OrganizationName string `json:"organization_name" validate:"required,min=2"`
	ContactPerson    string `json:"contact_person" validate:"required,min=2"`
	Mobile           string `json:"mobile" validate:"required,indian_mobile"`
	WhatsApp         string `json:"whatsapp" validate:"required,indian_mobile"`
	Email            string `json:"email" validate:"omitempty,email"`
}

var JobMessages = validation.Messages{
	"title.required":             "Job title is required",
	"organization_name.required": "Organization name is required",
	"whatsapp.indian_mobile":     "Invalid WhatsApp number",
	"whatsapp.required":          "WhatsApp number is required",
	"mobile.required":            "Mobile number is required",
	"description.min":            "Description must be at least 10 characters",
}

func JobFormFrom(get func(string) string) JobForm {
	t := func(k string) string { return strings.TrimSpace(get(k)) }
	return JobForm{
		Title:            t("title"),
		Category:         t("category"),
		JobType:          t("job_type"),
		Location:         t("location"),
		Salary:           t("salary"),
		Description:      t("description"),
		Requirements:     t("requirements"),
		OrganizationName: t("organization_name"),
		ContactPerson:    t("contact_person"),
		Mobile:           t("mobile"),
		WhatsApp:         t("whatsapp"),
		Email:            strings.ToLower(t("email")),
	}
}

func (f JobForm) ToModel() model.JobModel {
	return model.JobModel{
		Title:            f.Title,
		Category:         f.Category,
		JobType:          f.JobType,
		Location:         f.Location,
		Salary:           f.Salary,
		Description:      f.Description,
		Requirements:     f.Requirements,
		OrganizationName: f.OrganizationName,
		ContactPerson:    f.ContactPerson,
		Mobile:           f.Mobile,
		WhatsApp:         f.WhatsApp,
		Email:            f.Email,
		Status:           constants.JobPending,
	}
}

/* ==========================
   Listing
========================== */

const (
	SortRecent   = "recent"
	SortTitle    = "title"
	SortLocation = "location"
)

// ListingFilter is what the job board sends; empty and "All" values do not
// filter.
type ListingFilter struct {
	Keyword  string
	Location string
	Category string
	JobType  string
	Sort     string
	Page     int
}

func (f ListingFilter) CategoryActive() bool {
	return f.Category != "" && f.Category != constants.JobCategoryAll
}

func (f ListingFilter) JobTypeActive() bool {
	return f.JobType != "" && f.JobType != constants.JobTypeAll
}

type AdminFilter struct {
	Status   string
	Category string
	Q        string
}

/* ==========================
   Admin requests
========================== */

type StatusRequest struct {
	Status string `json:"status" validate:"required,job_status"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// FeatureRequest without a value flips the current flag.
type FeatureRequest struct {
	Featured *bool `json:"featured"`
}

type BulkRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1"`
	Reason string   `json:"reason"`
}

type SaveRequest struct {
	Email string `json:"email" validate:"required,email"`
}

/* ==========================
   Responses
========================== */

type JobResponse struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Category         string     `json:"category"`
	JobType          string     `json:"job_type"`
	Location         string     `json:"location"`
	Salary           string     `json:"salary,omitempty"`
	Description      string     `json:"description"`
	Requirements     string     `json:"requirements,omitempty"`
	OrganizationName string     `json:"organization_name"`
	ContactPerson    string     `json:"contact_person"`
	Mobile           string     `json:"mobile"`
	WhatsApp         string     `json:"whatsapp"`
	Email            string     `json:"email,omitempty"`
	WhatsAppLink     string     `json:"whatsapp_link"`
	Status           string     `json:"status"`
	IsFeatured       bool       `json:"is_featured"`
	ViewsCount       int        `json:"views_count"`
	RejectionReason  *string    `json:"rejection_reason,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func FromModel(m model.JobModel) JobResponse {
	return JobResponse{
		ID:               m.ID,
		Title:            m.Title,
		Category:         m.Category,
		JobType:          m.JobType,
		Location:         m.Location,
		Salary:           m.Salary,
		Description:      m.Description,
		Requirements:     m.Requirements,
		OrganizationName: m.OrganizationName,
		ContactPerson:    m.ContactPerson,
		Mobile:           m.Mobile,
		WhatsApp:         m.WhatsApp,
		Email:            m.Email,
		WhatsAppLink:     helper.JobWhatsAppLink(m.WhatsApp, m.Title),
		Status:           m.Status,
		IsFeatured:       m.IsFeatured,
		ViewsCount:       m.ViewsCount,
		RejectionReason:  m.RejectionReason,
		PublishedAt:      m.PublishedAt,
		CreatedAt:        m.CreatedAt,
	}
}

func FromModels(rows []model.JobModel) []JobResponse {
	out := make([]JobResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
