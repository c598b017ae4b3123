package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/testimonials/controller"
)

func TestimonialAdminRoutes(admin fiber.Router, ctrl *controller.TestimonialController) {
	g := admin.Group("/testimonials")
	g.Get("/", ctrl.AdminList)          // 📄 all, in display order
	g.Post("/", ctrl.Create)            // ➕ create (appended)
	g.Put("/:id", ctrl.Update)          // ✏️ update
	g.Patch("/:id/toggle", ctrl.Toggle) // 🔁 active flag
	g.Patch("/:id/move", ctrl.Move)     // ↕️ up / down
	g.Delete("/:id", ctrl.Delete)       // 🗑️ delete
}
