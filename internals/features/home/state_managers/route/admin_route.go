package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/state_managers/controller"
)

func StateManagerAdminRoutes(admin fiber.Router, ctrl *controller.StateManagerController) {
	g := admin.Group("/state-managers")
	g.Get("/", ctrl.AdminList)          // 📄 all managers
	g.Post("/", ctrl.Create)            // ➕ create (one per state)
	g.Put("/:id", ctrl.Update)          // ✏️ update
	g.Patch("/:id/toggle", ctrl.Toggle) // 🔁 active flag
	g.Delete("/:id", ctrl.Delete)       // 🗑️ delete + photo
}
