package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/legal_documents/controller"
)

func AllLegalDocumentRoutes(public fiber.Router, ctrl *controller.LegalDocumentController) {
	public.Get("/legal-documents", ctrl.List)
}
