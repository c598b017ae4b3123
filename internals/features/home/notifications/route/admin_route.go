package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/notifications/controller"
)

func NotificationAdminRoutes(admin fiber.Router, ctrl *controller.NotificationController) {
	g := admin.Group("/notifications")
	g.Get("/", ctrl.List)                    // 🔔 newest first
	g.Get("/unread-count", ctrl.UnreadCount) // 🔢 badge
	g.Patch("/read-all", ctrl.MarkAllRead)   // ✅ everything
	g.Patch("/:id/read", ctrl.MarkRead)      // ✅ one
	g.Delete("/:id", ctrl.Delete)            // 🗑️
}
