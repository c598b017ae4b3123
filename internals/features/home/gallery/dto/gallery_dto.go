package dto

import (
	"suryaghar_backend/internals/features/home/gallery/model"
	"suryaghar_backend/internals/helpers/validation"
)

const FieldImage = "image"

type UploadForm struct {
	Title    string `json:"title" validate:"required,min=2,max=150"`
	Category string `json:"category" validate:"required,gallery_category"`
}

var UploadMessages = validation.Messages{
	"title.required":            "Please fill all fields",
	"category.gallery_category": "Unknown gallery category",
}

func (f UploadForm) ToModel() model.GalleryImageModel {
	return model.GalleryImageModel{Title: f.Title, Category: f.Category, IsActive: true}
}

type ToggleRequest struct {
	IsActive *bool `json:"is_active"`
}
