package controller

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/home/testimonials/dto"
	"suryaghar_backend/internals/features/home/testimonials/service"
	helper "suryaghar_backend/internals/helpers"
	"suryaghar_backend/internals/helpers/validation"
)

type TestimonialController struct {
	Svc *service.TestimonialService
	Bus *events.Bus
}

func NewTestimonialController(svc *service.TestimonialService, bus *events.Bus) *TestimonialController {
	return &TestimonialController{Svc: svc, Bus: bus}
}

// bindRequest writes the error response itself and then reports ok=false.
func bindRequest(c *fiber.Ctx, req *dto.TestimonialRequest) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := validation.Check(*req, dto.Messages); errs != nil {
		return false, helper.JsonValidationError(c, errs)
	}
	return true, nil
}

// 📄 GET /api/public/testimonials
func (ctrl *TestimonialController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext(), true)
	if err != nil {
		return helper.JsonStoreError(c, err, "Testimonials")
	}
	return helper.JsonOK(c, "ok", rows)
}

// 📄 GET /api/admin/testimonials
func (ctrl *TestimonialController) AdminList(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext(), false)
	if err != nil {
		return helper.JsonStoreError(c, err, "Testimonials")
	}
	return helper.JsonOK(c, "ok", rows)
}

// ➕ POST /api/admin/testimonials
func (ctrl *TestimonialController) Create(c *fiber.Ctx) error {
	var req dto.TestimonialRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}
	row, err := ctrl.Svc.Create(c.UserContext(), req, helper.OptionalUserID(c))
	if err != nil {
		return helper.JsonStoreError(c, err, "Testimonial")
	}
	events.RecordAdmin(c, ctrl.Bus, "CREATE_TESTIMONIAL", "testimonials", &row.ID, map[string]any{"name": row.Name})
	return helper.JsonCreated(c, "Testimonial added successfully", row)
}

// ✏️ PUT /api/admin/testimonials/:id
func (ctrl *TestimonialController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.TestimonialRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}
	row, err := ctrl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.JsonStoreError(c, err, "Testimonial")
	}
	events.RecordAdmin(c, ctrl.Bus, "UPDATE_TESTIMONIAL", "testimonials", &row.ID, req.Fields())
	return helper.JsonUpdated(c, "Testimonial updated successfully", row)
}

// 🔁 PATCH /api/admin/testimonials/:id/toggle
func (ctrl *TestimonialController) Toggle(c *fiber.Ctx) error {
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
		return helper.JsonStoreError(c, err, "Testimonial")
	}
	events.RecordAdmin(c, ctrl.Bus, "TOGGLE_TESTIMONIAL", "testimonials", &row.ID, map[string]any{"is_active": row.IsActive})
	msg := "Testimonial deactivated"
	if row.IsActive {
		msg = "Testimonial activated"
	}
	return helper.JsonUpdated(c, msg, row)
}

// ↕️ PATCH /api/admin/testimonials/:id/move
func (ctrl *TestimonialController) Move(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req, nil); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	dir, _ := datastore.ParseDirection(req.Direction)
	moved, err := ctrl.Svc.Move(c.UserContext(), id, dir)
	if err != nil {
		return helper.JsonStoreError(c, err, "Testimonial")
	}
	if moved {
		events.RecordAdmin(c, ctrl.Bus, "MOVE_TESTIMONIAL", "testimonials", &id, map[string]any{"direction": req.Direction})
	}
	return helper.JsonUpdated(c, "Order updated", fiber.Map{"id": id, "moved": moved})
}

// 🗑️ DELETE /api/admin/testimonials/:id
func (ctrl *TestimonialController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonStoreError(c, err, "Testimonial")
	}
	events.RecordAdmin(c, ctrl.Bus, "DELETE_TESTIMONIAL", "testimonials", &id, nil)
	return helper.JsonDeleted(c, "Testimonial deleted successfully", fiber.Map{"id": id})
}
