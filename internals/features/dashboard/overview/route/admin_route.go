package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/dashboard/overview/controller"
)

func DashboardAdminRoutes(admin fiber.Router, ctrl *controller.OverviewController) {
	admin.Get("/dashboard", ctrl.Overview) // 📊 counts, distributions, 6-month trend
}
