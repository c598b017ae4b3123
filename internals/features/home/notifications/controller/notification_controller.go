package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/notifications/dto"
	"suryaghar_backend/internals/features/home/notifications/service"
	helper "suryaghar_backend/internals/helpers"
)

type NotificationController struct {
	Svc *service.NotificationService
}

func NewNotificationController(svc *service.NotificationService) *NotificationController {
	return &NotificationController{Svc: svc}
}

// 🔔 GET /api/admin/notifications?unread=true&type=job
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	f := dto.Filter{
		UnreadOnly: c.QueryBool("unread", false),
		Type:       strings.TrimSpace(c.Query("type")),
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	rows, total, err := ctrl.Svc.List(c.UserContext(), f, p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonStoreError(c, err, "Notifications")
	}
	unread, err := ctrl.Svc.UnreadCount(c.UserContext())
	if err != nil {
		return helper.JsonStoreError(c, err, "Notifications")
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	pg.Count = len(rows)
	return helper.JsonListEx(c, "ok", dto.FromModels(rows), &pg, fiber.Map{"unread": unread})
}

// 🔢 GET /api/admin/notifications/unread-count
func (ctrl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	n, err := ctrl.Svc.UnreadCount(c.UserContext())
	if err != nil {
		return helper.JsonStoreError(c, err, "Notifications")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"unread": n})
}

// ✅ PATCH /api/admin/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctrl.Svc.MarkRead(c.UserContext(), id)
	if err != nil {
		return helper.JsonStoreError(c, err, "Notification")
	}
	return helper.JsonUpdated(c, "Notification marked as read", dto.FromModel(*row))
}

// ✅ PATCH /api/admin/notifications/read-all
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	n, err := ctrl.Svc.MarkAllRead(c.UserContext())
	if err != nil {
		return helper.JsonStoreError(c, err, "Notifications")
	}
	return helper.JsonUpdated(c, "All notifications marked as read", fiber.Map{"updated": n})
}

// 🗑️ DELETE /api/admin/notifications/:id
func (ctrl *NotificationController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonStoreError(c, err, "Notification")
	}
	return helper.JsonDeleted(c, "Notification deleted", fiber.Map{"id": id})
}
