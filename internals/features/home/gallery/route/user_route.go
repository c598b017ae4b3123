package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/gallery/controller"
)

func AllGalleryRoutes(public fiber.Router, ctrl *controller.GalleryController) {
	public.Get("/gallery", ctrl.List)
}
