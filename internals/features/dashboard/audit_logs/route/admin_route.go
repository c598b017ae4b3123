package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/dashboard/audit_logs/controller"
)

func AuditLogAdminRoutes(admin fiber.Router, ctrl *controller.AuditLogController) {
	admin.Get("/audit-logs", ctrl.List) // 🧾 newest first, filterable
}
