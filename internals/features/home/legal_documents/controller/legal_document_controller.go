package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/home/legal_documents/dto"
	"suryaghar_backend/internals/features/home/legal_documents/service"
	helper "suryaghar_backend/internals/helpers"
	"suryaghar_backend/internals/helpers/storage"
	"suryaghar_backend/internals/helpers/validation"
)

type LegalDocumentController struct {
	Svc *service.LegalDocumentService
	Bus *events.Bus
}

func NewLegalDocumentController(svc *service.LegalDocumentService, bus *events.Bus) *LegalDocumentController {
	return &LegalDocumentController{Svc: svc, Bus: bus}
}

// 📄 GET /api/public/legal-documents
func (ctrl *LegalDocumentController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext())
	if err != nil {
		return helper.JsonStoreError(c, err, "Legal documents")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// 📄 GET /api/admin/legal-documents (every type, uploaded or not)
func (ctrl *LegalDocumentController) AdminList(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext())
	if err != nil {
		return helper.JsonStoreError(c, err, "Legal documents")
	}
	return helper.JsonOK(c, "ok", dto.Slots(rows))
}

// ⬆️ POST /api/admin/legal-documents (multipart: name, file)
func (ctrl *LegalDocumentController) Upload(c *fiber.Ctx) error {
	form := dto.UploadForm{Name: strings.TrimSpace(c.FormValue("name"))}
	errs := validation.Check(form, dto.UploadMessages)
	fh := helper.OptionalFormFile(c, dto.FieldFile)
	if err := storage.LegalDocRule.Check(dto.FieldFile, fh); err != nil {
		if fe, ok := storage.IsFileError(err); ok {
			if errs == nil {
				errs = validation.Errors{}
			}
			errs.Add(fe.Field, fe.Msg)
		}
	}
	if errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	row, created, err := ctrl.Svc.Upsert(c.UserContext(), form.Name, fh, helper.OptionalUserID(c))
	if err != nil {
		if fe, ok := storage.IsFileError(err); ok {
			return helper.JsonValidationError(c, map[string][]string{fe.Field: {fe.Msg}})
		}
		return helper.JsonStoreError(c, err, "Legal document")
	}

	action, msg := "UPDATE_LEGAL_DOCUMENT", "Document updated successfully"
	if created {
		action, msg = "UPLOAD_LEGAL_DOCUMENT", "Document uploaded successfully"
	}
	events.RecordAdmin(c, ctrl.Bus, action, "legal_documents", &row.ID, map[string]any{"name": row.Name})
	if created {
		return helper.JsonCreated(c, msg, dto.FromModel(*row))
	}
	return helper.JsonUpdated(c, msg, dto.FromModel(*row))
}

// 🗑️ DELETE /api/admin/legal-documents/:id
func (ctrl *LegalDocumentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctrl.Svc.Delete(c.UserContext(), id)
	if err != nil {
		return helper.JsonStoreError(c, err, "Legal document")
	}
	events.RecordAdmin(c, ctrl.Bus, "DELETE_LEGAL_DOCUMENT", "legal_documents", &row.ID, map[string]any{"name": row.Name})
	return helper.JsonDeleted(c, "Document deleted successfully", fiber.Map{"id": row.ID})
}
