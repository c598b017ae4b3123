package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/state_managers/controller"
)

func AllStateManagerRoutes(public fiber.Router, ctrl *controller.StateManagerController) {
	public.Get("/state-managers", ctrl.List)
}
