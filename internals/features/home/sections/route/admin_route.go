package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/sections/controller"
)

func ContentAdminRoutes(admin fiber.Router, ctrl *controller.ContentController) {
	admin.Post("/content/reload", ctrl.Reload) // 🔄 re-read CONTENT_FILE
}
