package details

import (
	"github.com/gofiber/fiber/v2"

	validateRoute "suryaghar_backend/internals/features/forms/validate/route"
)

// ✅ e.g. POST /api/public/validate/applicant
func FormsPublicRoutes(api fiber.Router) {
	validateRoute.AllValidateRoutes(api)
}
