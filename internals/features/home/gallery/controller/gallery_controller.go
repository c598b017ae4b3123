package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/home/gallery/dto"
	"suryaghar_backend/internals/features/home/gallery/service"
	helper "suryaghar_backend/internals/helpers"
	"suryaghar_backend/internals/helpers/storage"
	"suryaghar_backend/internals/helpers/validation"
)

type GalleryController struct {
	Svc *service.GalleryService
	Bus *events.Bus
}

func NewGalleryController(svc *service.GalleryService, bus *events.Bus) *GalleryController {
	return &GalleryController{Svc: svc, Bus: bus}
}

func categoryQuery(c *fiber.Ctx) string {
	cat := strings.TrimSpace(c.Query("category"))
	if strings.EqualFold(cat, "all") {
		return ""
	}
	return cat
}

// 📄 GET /api/public/gallery?category=
func (ctrl *GalleryController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext(), categoryQuery(c), true)
	if err != nil {
		return helper.JsonStoreError(c, err, "Gallery")
	}
	return helper.JsonOK(c, "ok", rows)
}

// 📄 GET /api/admin/gallery?category=
func (ctrl *GalleryController) AdminList(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext(), categoryQuery(c), false)
	if err != nil {
		return helper.JsonStoreError(c, err, "Gallery")
	}
	return helper.JsonOK(c, "ok", rows)
}

// ⬆️ POST /api/admin/gallery (multipart: title, category, image)
func (ctrl *GalleryController) Upload(c *fiber.Ctx) error {
	form := dto.UploadForm{
		Title:    strings.TrimSpace(c.FormValue("title")),
		Category: strings.TrimSpace(c.FormValue("category")),
	}
	errs := validation.Check(form, dto.UploadMessages)
	fh := helper.OptionalFormFile(c, dto.FieldImage)
	if err := storage.ImageRule.Check(dto.FieldImage, fh); err != nil {
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

	row, err := ctrl.Svc.Upload(c.UserContext(), form, fh, helper.OptionalUserID(c))
	if err != nil {
		if fe, ok := storage.IsFileError(err); ok {
			return helper.JsonValidationError(c, map[string][]string{fe.Field: {fe.Msg}})
		}
		return helper.JsonStoreError(c, err, "Gallery image")
	}
	events.RecordAdmin(c, ctrl.Bus, "UPLOAD_GALLERY_IMAGE", "gallery_images", &row.ID, map[string]any{"title": row.Title, "category": row.Category})
	return helper.JsonCreated(c, "Image uploaded successfully", row)
}

// 🔁 PATCH /api/admin/gallery/:id/toggle
func (ctrl *GalleryController) Toggle(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ToggleRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	row, err := ctrl.Svc.SetActive(c.UserContext(), id, req.IsActive)
	if err != nil {
		return helper.JsonStoreError(c, err, "Gallery image")
	}
	events.RecordAdmin(c, ctrl.Bus, "TOGGLE_GALLERY_IMAGE", "gallery_images", &row.ID, map[string]any{"is_active": row.IsActive})
	return helper.JsonUpdated(c, "Image visibility updated", row)
}

// 🗑️ DELETE /api/admin/gallery/:id
func (ctrl *GalleryController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctrl.Svc.Delete(c.UserContext(), id)
	if err != nil {
		return helper.JsonStoreError(c, err, "Gallery image")
	}
	events.RecordAdmin(c, ctrl.Bus, "DELETE_GALLERY_IMAGE", "gallery_images", &row.ID, map[string]any{"title": row.Title})
	return helper.JsonDeleted(c, "Image deleted successfully", fiber.Map{"id": row.ID})
}
