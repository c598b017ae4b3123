package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/gallery/controller"
)

func GalleryAdminRoutes(admin fiber.Router, ctrl *controller.GalleryController) {
	g := admin.Group("/gallery")
	g.Get("/", ctrl.AdminList)          // 📄 all images
	g.Post("/", ctrl.Upload)            // ⬆️ upload
	g.Patch("/:id/toggle", ctrl.Toggle) // 🔁 show / hide
	g.Delete("/:id", ctrl.Delete)       // 🗑️ delete + file
}
