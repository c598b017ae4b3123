package controller

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/home/videos/dto"
	"suryaghar_backend/internals/features/home/videos/service"
	helper "suryaghar_backend/internals/helpers"
	"suryaghar_backend/internals/helpers/validation"
)

type VideoController struct {
	Svc *service.VideoService
	Bus *events.Bus
}

func NewVideoController(svc *service.VideoService, bus *events.Bus) *VideoController {
	return &VideoController{Svc: svc, Bus: bus}
}

func bindRequest(c *fiber.Ctx, req *dto.VideoRequest) (string, bool, error) {
	if err := c.BodyParser(req); err != nil {
		return "", false, helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	videoID, errs := req.Validate()
	if errs != nil {
		return "", false, helper.JsonValidationError(c, errs)
	}
	return videoID, true, nil
}

// 📄 GET /api/public/videos
func (ctrl *VideoController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext(), true)
	if err != nil {
		return helper.JsonStoreError(c, err, "Videos")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// 📄 GET /api/admin/videos
func (ctrl *VideoController) AdminList(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext(), false)
	if err != nil {
		return helper.JsonStoreError(c, err, "Videos")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// ➕ POST /api/admin/videos
func (ctrl *VideoController) Create(c *fiber.Ctx) error {
	var req dto.VideoRequest
	videoID, ok, err := bindRequest(c, &req)
	if !ok {
		return err
	}
	row, err := ctrl.Svc.Create(c.UserContext(), req, videoID)
	if err != nil {
		return helper.JsonStoreError(c, err, "Video")
	}
	events.RecordAdmin(c, ctrl.Bus, "CREATE_VIDEO", "videos", &row.ID, map[string]any{"title": row.Title, "video_id": row.VideoID})
	return helper.JsonCreated(c, "Video added successfully", dto.FromModel(*row))
}

// ✏️ PUT /api/admin/videos/:id
func (ctrl *VideoController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.VideoRequest
	videoID, ok, err := bindRequest(c, &req)
	if !ok {
		return err
	}
	row, err := ctrl.Svc.Update(c.UserContext(), id, req, videoID)
	if err != nil {
		return helper.JsonStoreError(c, err, "Video")
	}
	events.RecordAdmin(c, ctrl.Bus, "UPDATE_VIDEO", "videos", &row.ID, req.Fields(videoID))
	return helper.JsonUpdated(c, "Video updated successfully", dto.FromModel(*row))
}

// ↕️ PATCH /api/admin/videos/:id/move
func (ctrl *VideoController) Move(c *fiber.Ctx) error {
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
		return helper.JsonStoreError(c, err, "Video")
	}
	if moved {
		events.RecordAdmin(c, ctrl.Bus, "MOVE_VIDEO", "videos", &id, map[string]any{"direction": req.Direction})
	}
	return helper.JsonUpdated(c, "Order updated", fiber.Map{"id": id, "moved": moved})
}

// 🗑️ DELETE /api/admin/videos/:id
func (ctrl *VideoController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonStoreError(c, err, "Video")
	}
	events.RecordAdmin(c, ctrl.Bus, "DELETE_VIDEO", "videos", &id, nil)
	return helper.JsonDeleted(c, "Video deleted successfully", fiber.Map{"id": id})
}
