package dto

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/features/home/legal_documents/model"
	"suryaghar_backend/internals/helpers/validation"
)

const FieldFile = "file"

type UploadForm struct {
	Name string `json:"name" validate:"required,legal_doc_type"`
}

var UploadMessages = validation.Messages{
	"name.required":       "Please select a document type",
	"name.legal_doc_type": "Unknown document type",
}

type LegalDocumentResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	FileURL    string    `json:"file_url"`
	IsPDF      bool      `json:"is_pdf"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func FromModel(m model.LegalDocumentModel) LegalDocumentResponse {
	return LegalDocumentResponse{
		ID:         m.ID,
		Name:       m.Name,
		FileURL:    m.FileURL,
		IsPDF:      strings.EqualFold(path.Ext(m.FileURL), ".pdf"),
		UploadedAt: m.UploadedAt,
	}
}

func FromModels(rows []model.LegalDocumentModel) []LegalDocumentResponse {
	out := make([]LegalDocumentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

// Slot is one of the fixed document types with its current file, if any.
type Slot struct {
	Name     string                 `json:"name"`
	Document *LegalDocumentResponse `json:"document"`
}

// Slots lays the uploaded documents over the fixed list of types.
func Slots(rows []model.LegalDocumentModel) []Slot {
	byName := make(map[string]model.LegalDocumentModel, len(rows))
	for _, r := range rows {
		byName[r.Name] = r
	}
	out := make([]Slot, 0, len(constants.LegalDocumentTypes))
	for _, name := range constants.LegalDocumentTypes {
		s := Slot{Name: name}
		if r, ok := byName[name]; ok {
			d := FromModel(r)
			s.Document = &d
		}
		out = append(out, s)
	}
	return out
}
