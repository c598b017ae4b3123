package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/jobs/jobs/controller"
)

func JobAdminRoutes(admin fiber.Router, ctrl *controller.JobController) {
	g := admin.Group("/jobs")
	g.Get("/", ctrl.AdminList)                // 📄 list + counters
	g.Post("/bulk/approve", ctrl.BulkApprove) // ✅ bulk approve
	g.Post("/bulk/reject", ctrl.BulkReject)   // ❌ bulk reject
	g.Get("/:id", ctrl.AdminGet)              // 🔍 detail (any status)
	g.Patch("/:id/approve", ctrl.Approve)     // ✅ approve
	g.Patch("/:id/reject", ctrl.Reject)       // ❌ reject (+reason)
	g.Patch("/:id/close", ctrl.Close)         // 🔒 close
	g.Patch("/:id/status", ctrl.UpdateStatus) // ✏️ status
	g.Patch("/:id/feature", ctrl.Feature)     // ⭐ featured flag
	g.Delete("/:id", ctrl.Delete)             // 🗑️ delete
}
