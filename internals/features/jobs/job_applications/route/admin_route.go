package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/jobs/job_applications/controller"
)

func JobApplicationAdminRoutes(admin fiber.Router, ctrl *controller.JobApplicationController) {
	g := admin.Group("/job-applications")
	g.Get("/", ctrl.List)                     // 📄 list + stats
	g.Get("/export", ctrl.Export)             // 📥 csv
	g.Patch("/bulk/status", ctrl.BulkStatus)  // ✏️ bulk status
	g.Get("/:id", ctrl.Get)                   // 🔍 detail
	g.Patch("/:id/status", ctrl.UpdateStatus) // ✏️ status (+notes)
	g.Patch("/:id/rating", ctrl.Rate)         // ⭐ rating 1-5 (+notes)
	g.Delete("/:id", ctrl.Delete)             // 🗑️ delete + resume
}
