package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/home/sections/model"
	"suryaghar_backend/internals/features/home/sections/service"
	helper "suryaghar_backend/internals/helpers"
)

type ContentController struct {
	Svc *service.ContentService
	Bus *events.Bus
}

func NewContentController(svc *service.ContentService, bus *events.Bus) *ContentController {
	return &ContentController{Svc: svc, Bus: bus}
}

type pageResponse struct {
	model.Content
	Countdown    model.Countdown `json:"countdown"`
	HelplineLink string          `json:"helpline_link"`
}

/* ==========================  PUBLIC  ========================== */

// 📄 GET /api/public/content
func (ctrl *ContentController) All(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", pageResponse{
		Content:      ctrl.Svc.Content(),
		Countdown:    ctrl.Svc.Countdown(),
		HelplineLink: helper.HelplineLink(),
	})
}

// 📄 GET /api/public/content/:section
func (ctrl *ContentController) Section(c *fiber.Ctx) error {
	name := c.Params("section")
	data, ok := ctrl.Svc.Section(name)
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Section not found")
	}
	return helper.JsonOK(c, "ok", data)
}

// ⏳ GET /api/public/countdown
func (ctrl *ContentController) Countdown(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", ctrl.Svc.Countdown())
}

/* ==========================  ADMIN  ========================== */

// 🔄 POST /api/admin/content/reload
func (ctrl *ContentController) Reload(c *fiber.Ctx) error {
	if err := ctrl.Svc.Reload(); err != nil {
		log.Printf("[ERROR] reload content: %v", err)
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Content file is invalid: "+err.Error())
	}
	events.RecordAdmin(c, ctrl.Bus, "RELOAD_CONTENT", "content", nil, map[string]any{"path": ctrl.Svc.Path})
	return helper.JsonOK(c, "Content reloaded", ctrl.Svc.Content())
}
