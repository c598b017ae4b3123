package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/forms/validate/controller"
)

func AllValidateRoutes(public fiber.Router) {
	public.Post("/validate/:form", controller.Validate)
}
