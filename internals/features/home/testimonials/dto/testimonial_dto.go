package dto

import (
	"strings"

	"suryaghar_backend/internals/features/home/testimonials/model"
	"suryaghar_backend/internals/helpers/validation"
)

type TestimonialRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	State    string `json:"state" validate:"required"`
	Position string `json:"position" validate:"required"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	Review   string `json:"review" validate:"required,min=10"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	IsActive *bool  `json:"is_active"`
}

var Messages = validation.Messages{
	"name.required":     "Please fill all required fields",
	"state.required":    "Please fill all required fields",
	"position.required": "Please fill all required fields",
	"review.required":   "Please fill all required fields",
	"rating":            "Rating must be between 1 and 5",
}

func (r *TestimonialRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.State = strings.TrimSpace(r.State)
	r.Position = strings.TrimSpace(r.Position)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.Review = strings.TrimSpace(r.Review)
}

func (r TestimonialRequest) ToModel() model.TestimonialModel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.TestimonialModel{
		Name:     r.Name,
		State:    r.State,
		Position: r.Position,
		ImageURL: r.ImageURL,
		Review:   r.Review,
		Rating:   r.Rating,
		IsActive: active,
	}
}

func (r TestimonialRequest) Fields() map[string]any {
	f := map[string]any{
		"name":      r.Name,
		"state":     r.State,
		"position":  r.Position,
		"image_url": r.ImageURL,
		"review":    r.Review,
		"rating":    r.Rating,
	}
	if r.IsActive != nil {
		f["is_active"] = *r.IsActive
	}
	return f
}

type ToggleRequest struct {
	IsActive *bool `json:"is_active"`
}

type MoveRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}
