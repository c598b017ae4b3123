package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/videos/controller"
)

func AllVideoRoutes(public fiber.Router, ctrl *controller.VideoController) {
	public.Get("/videos", ctrl.List)
}
