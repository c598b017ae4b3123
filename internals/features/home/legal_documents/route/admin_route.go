package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/legal_documents/controller"
)

func LegalDocumentAdminRoutes(admin fiber.Router, ctrl *controller.LegalDocumentController) {
	g := admin.Group("/legal-documents")
	g.Get("/", ctrl.AdminList)    // 📄 all types
	g.Post("/", ctrl.Upload)      // ⬆️ upload / replace by type
	g.Delete("/:id", ctrl.Delete) // 🗑️ delete + file
}
