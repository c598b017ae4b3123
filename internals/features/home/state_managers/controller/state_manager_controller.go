package controller

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/home/state_managers/dto"
	"suryaghar_backend/internals/features/home/state_managers/service"
	helper "suryaghar_backend/internals/helpers"
	"suryaghar_backend/internals/helpers/storage"
	"suryaghar_backend/internals/helpers/validation"
)

type StateManagerController struct {
	Svc *service.StateManagerService
	Bus *events.Bus
}

func NewStateManagerController(svc *service.StateManagerService, bus *events.Bus) *StateManagerController {
	return &StateManagerController{Svc: svc, Bus: bus}
}

// 📄 GET /api/public/state-managers
func (ctrl *StateManagerController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext(), true)
	if err != nil {
		return helper.JsonStoreError(c, err, "State managers")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// 📄 GET /api/admin/state-managers
func (ctrl *StateManagerController) AdminList(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext(), false)
	if err != nil {
		return helper.JsonStoreError(c, err, "State managers")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// readForm validates the fields and the photo. The photo is mandatory only on
// create.
func readForm(c *fiber.Ctx, photoRequired bool) (dto.ManagerForm, *multipart.FileHeader, validation.Errors) {
	form := dto.ManagerFormFrom(helper.FormGetter(c))
	errs := validation.Check(form, dto.Messages)
	fh := helper.OptionalFormFile(c, dto.FieldPhoto)
	if fh != nil || photoRequired {
		if err := storage.PhotoRule.Check(dto.FieldPhoto, fh); err != nil {
			if fe, ok := storage.IsFileError(err); ok {
				if errs == nil {
					errs = validation.Errors{}
				}
				msg := fe.Msg
				if fh == nil {
					msg = "Please upload manager photo"
				}
				errs.Add(fe.Field, msg)
			}
		}
	}
	return form, fh, errs
}

func storeOrFileError(c *fiber.Ctx, err error) error {
	if fe, ok := storage.IsFileError(err); ok {
		return helper.JsonValidationError(c, map[string][]string{fe.Field: {fe.Msg}})
	}
	return helper.JsonStoreError(c, err, "State manager")
}

// ➕ POST /api/admin/state-managers (multipart)
func (ctrl *StateManagerController) Create(c *fiber.Ctx) error {
	form, photo, errs := readForm(c, true)
	if errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	row, err := ctrl.Svc.Create(c.UserContext(), form, photo)
	if err != nil {
		return storeOrFileError(c, err)
	}
	events.RecordAdmin(c, ctrl.Bus, "CREATE_STATE_MANAGER", "state_project_managers", &row.ID, map[string]any{"state": row.State, "name": row.Name})
	return helper.JsonCreated(c, "Manager added successfully", dto.FromModel(*row))
}

// ✏️ PUT /api/admin/state-managers/:id (multipart, photo optional)
func (ctrl *StateManagerController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	form, photo, errs := readForm(c, false)
	if errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	row, err := ctrl.Svc.Update(c.UserContext(), id, form, photo)
	if err != nil {
		return storeOrFileError(c, err)
	}
	events.RecordAdmin(c, ctrl.Bus, "UPDATE_STATE_MANAGER", "state_project_managers", &row.ID, form.Fields())
	return helper.JsonUpdated(c, "Manager updated successfully", dto.FromModel(*row))
}

// 🔁 PATCH /api/admin/state-managers/:id/toggle
func (ctrl *StateManagerController) Toggle(c *fiber.Ctx) error {
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
		return helper.JsonStoreError(c, err, "State manager")
	}
	events.RecordAdmin(c, ctrl.Bus, "TOGGLE_STATE_MANAGER", "state_project_managers", &row.ID, map[string]any{"is_active": row.IsActive})
	return helper.JsonUpdated(c, "Manager visibility updated", dto.FromModel(*row))
}

// 🗑️ DELETE /api/admin/state-managers/:id
func (ctrl *StateManagerController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctrl.Svc.Delete(c.UserContext(), id)
	if err != nil {
		return helper.JsonStoreError(c, err, "State manager")
	}
	events.RecordAdmin(c, ctrl.Bus, "DELETE_STATE_MANAGER", "state_project_managers", &row.ID, map[string]any{"state": row.State})
	return helper.JsonDeleted(c, "Manager deleted successfully", fiber.Map{"id": row.ID})
}
