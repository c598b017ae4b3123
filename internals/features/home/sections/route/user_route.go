package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/sections/controller"
)

func AllContentRoutes(public fiber.Router, ctrl *controller.ContentController) {
	public.Get("/content", ctrl.All)
	public.Get("/content/:section", ctrl.Section)
	public.Get("/countdown", ctrl.Countdown)
}
