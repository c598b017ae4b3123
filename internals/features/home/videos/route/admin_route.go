package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/videos/controller"
)

func VideoAdminRoutes(admin fiber.Router, ctrl *controller.VideoController) {
	g := admin.Group("/videos")
	g.Get("/", ctrl.AdminList)      // 📄 all videos in display order
	g.Post("/", ctrl.Create)        // ➕ append
	g.Put("/:id", ctrl.Update)      // ✏️ update (re-parses the link)
	g.Patch("/:id/move", ctrl.Move) // ↕️ up/down
	g.Delete("/:id", ctrl.Delete)   // 🗑️ delete
}
