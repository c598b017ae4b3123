package details

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/datastore"
	jobAppController "suryaghar_backend/internals/features/jobs/job_applications/controller"
	jobAppModel "suryaghar_backend/internals/features/jobs/job_applications/model"
	jobAppRoute "suryaghar_backend/internals/features/jobs/job_applications/route"
	jobAppService "suryaghar_backend/internals/features/jobs/job_applications/service"
	jobController "suryaghar_backend/internals/features/jobs/jobs/controller"
	jobModel "suryaghar_backend/internals/features/jobs/jobs/model"
	jobRoute "suryaghar_backend/internals/features/jobs/jobs/route"
	jobService "suryaghar_backend/internals/features/jobs/jobs/service"
)

func newJobController(d *Deps) *jobController.JobController {
	svc := jobService.NewJobService(
		datastore.Open[jobModel.JobModel](d.DB),
		datastore.Open[jobModel.JobViewModel](d.DB),
		datastore.Open[jobModel.JobSaveModel](d.DB),
		d.Bus,
	)
	return jobController.NewJobController(svc)
}

func newJobApplicationController(d *Deps) *jobAppController.JobApplicationController {
	svc := jobAppService.NewJobApplicationService(
		datastore.Open[jobAppModel.JobApplicationModel](d.DB),
		datastore.Open[jobModel.JobModel](d.DB),
		d.Uploader,
		d.Bus,
	)
	return jobAppController.NewJobApplicationController(svc)
}

// ✅ e.g. /api/public/jobs
func JobsPublicRoutes(api fiber.Router, d *Deps) {
	jobRoute.AllJobRoutes(api, newJobController(d), d.Sessions)
	jobAppRoute.AllJobApplicationRoutes(api, newJobApplicationController(d))
}

// ✅ e.g. /api/admin/jobs
func JobsAdminRoutes(api fiber.Router, d *Deps) {
	jobRoute.JobAdminRoutes(api, newJobController(d))
	jobAppRoute.JobApplicationAdminRoutes(api, newJobApplicationController(d))
}
