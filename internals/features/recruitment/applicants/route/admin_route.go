package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/recruitment/applicants/controller"
)

func ApplicantAdminRoutes(admin fiber.Router, ctrl *controller.ApplicantController) {
	g := admin.Group("/applicants")
	g.Get("/", ctrl.List)                     // 📄 list + counters
	g.Get("/export", ctrl.Export)             // 📥 xlsx
	g.Patch("/bulk/status", ctrl.BulkStatus)  // ✏️ bulk status
	g.Get("/:id", ctrl.Get)                   // 🔍 detail
	g.Patch("/:id/status", ctrl.UpdateStatus) // ✏️ status
	g.Delete("/:id", ctrl.Delete)             // 🗑️ delete + files
}
