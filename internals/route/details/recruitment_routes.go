package details

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/datastore"
	applicantController "suryaghar_backend/internals/features/recruitment/applicants/controller"
	applicantModel "suryaghar_backend/internals/features/recruitment/applicants/model"
	applicantRoute "suryaghar_backend/internals/features/recruitment/applicants/route"
	applicantService "suryaghar_backend/internals/features/recruitment/applicants/service"
)

func newApplicantController(d *Deps) *applicantController.ApplicantController {
	svc := applicantService.NewApplicantService(datastore.Open[applicantModel.ApplicantModel](d.DB), d.Uploader, d.Bus)
	return applicantController.NewApplicantController(svc)
}

// ✅ e.g. POST /api/public/applicants
func RecruitmentPublicRoutes(api fiber.Router, d *Deps) {
	applicantRoute.AllApplicantRoutes(api, newApplicantController(d))
}

// ✅ e.g. GET /api/admin/applicants
func RecruitmentAdminRoutes(api fiber.Router, d *Deps) {
	applicantRoute.ApplicantAdminRoutes(api, newApplicantController(d))
}
