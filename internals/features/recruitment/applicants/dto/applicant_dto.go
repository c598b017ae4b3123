package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/features/recruitment/applicants/model"
	"suryaghar_backend/internals/helpers/validation"
)

/* ==========================
   Public form
========================== */

// ApplicantForm is the main recruitment form. Attachments travel alongside
// as multipart files and are checked separately.
type ApplicantForm struct {
	FullName      string `json:"full_name" validate:"required,min=3"`
	State         string `json:"state" validate:"required,indian_state"`
	District      string `json:"district" validate:"required,min=2"`
	Position      string `json:"position" validate:"required,job_position"`
	Qualification string `json:"qualification" validate:"required,min=2"`
	Experience    *int   `json:"experience" validate:"required,gte=0"`
	Mobile        string `json:"mobile" validate:"required,indian_mobile"`
	Email         string `json:"email" validate:"required,email"`
}

var ApplicantMessages = validation.Messages{
	"full_name.required": "Name is required",
	"full_name.min":      "Name must be at least 3 characters",
	"experience.gte":     "Experience cannot be negative",
}

// Attachment field names of the form.
const (
	FieldResume  = "resume"
	FieldAadhaar = "aadhaar"
	FieldPhoto   = "photo"
)

// ApplicantFormFrom reads the form through get (c.FormValue or a decoded
// JSON body). Experience that is present but not a whole number is reported
// here since it never reaches the struct.
func ApplicantFormFrom(get func(string) string) (ApplicantForm, validation.Errors) {
	f := ApplicantForm{
		FullName:      strings.TrimSpace(get("full_name")),
		State:         strings.TrimSpace(get("state")),
		District:      strings.TrimSpace(get("district")),
		Position:      strings.TrimSpace(get("position")),
		Qualification: strings.TrimSpace(get("qualification")),
		Mobile:        strings.TrimSpace(get("mobile")),
		Email:         strings.ToLower(strings.TrimSpace(get("email"))),
	}
	errs := validation.Errors{}
	if raw := strings.TrimSpace(get("experience")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs.Add("experience", "Experience must be a whole number")
		} else {
			f.Experience = &n
		}
	}
	return f, errs
}

func (f ApplicantForm) ToModel() model.ApplicantModel {
	exp := 0
	if f.Experience != nil {
		exp = *f.Experience
	}
	return model.ApplicantModel{
		FullName:      f.FullName,
		State:         f.State,
		District:      f.District,
		Position:      f.Position,
		Qualification: f.Qualification,
		Experience:    exp,
		Mobile:        f.Mobile,
		Email:         f.Email,
		Status:        constants.ApplicantPending,
	}
}

/* ==========================
   Admin
========================== */

type ApplicantFilter struct {
	Q             string
	State         string
	Position      string
	Status        string
	Qualification string
	From          *time.Time
	To            *time.Time
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,applicant_status"`
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1"`
	Status string   `json:"status" validate:"required,applicant_status"`
}

type ApplicantResponse struct {
	ID            uuid.UUID `json:"id"`
	FullName      string    `json:"full_name"`
	State         string    `json:"state"`
	District      string    `json:"district"`
	Position      string    `json:"position"`
	Qualification string    `json:"qualification"`
	Experience    int       `json:"experience"`
	ExperienceTxt string    `json:"experience_text"`
	Mobile        string    `json:"mobile"`
	Email         string    `json:"email"`
	ResumeURL     string    `json:"resume_url"`
	AadhaarURL    string    `json:"aadhaar_url"`
	PhotoURL      string    `json:"photo_url"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func ExperienceText(years int) string {
	return strconv.Itoa(years) + " years"
}

func FromModel(m model.ApplicantModel) ApplicantResponse {
	return ApplicantResponse{
		ID:            m.ID,
		FullName:      m.FullName,
		State:         m.State,
		District:      m.District,
		Position:      m.Position,
		Qualification: m.Qualification,
		Experience:    m.Experience,
		ExperienceTxt: ExperienceText(m.Experience),
		Mobile:        m.Mobile,
		Email:         m.Email,
		ResumeURL:     m.ResumeURL,
		AadhaarURL:    m.AadhaarURL,
		PhotoURL:      m.PhotoURL,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
	}
}

func FromModels(rows []model.ApplicantModel) []ApplicantResponse {
	out := make([]ApplicantResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

// StatusCounts backs the three counters above the applicants table.
type StatusCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
