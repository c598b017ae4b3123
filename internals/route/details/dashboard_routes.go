package details

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/datastore"
	auditController "suryaghar_backend/internals/features/dashboard/audit_logs/controller"
	auditModel "suryaghar_backend/internals/features/dashboard/audit_logs/model"
	auditRoute "suryaghar_backend/internals/features/dashboard/audit_logs/route"
	auditService "suryaghar_backend/internals/features/dashboard/audit_logs/service"
	overviewController "suryaghar_backend/internals/features/dashboard/overview/controller"
	overviewRoute "suryaghar_backend/internals/features/dashboard/overview/route"
	overviewService "suryaghar_backend/internals/features/dashboard/overview/service"
	jobAppModel "suryaghar_backend/internals/features/jobs/job_applications/model"
	jobModel "suryaghar_backend/internals/features/jobs/jobs/model"
	applicantModel "suryaghar_backend/internals/features/recruitment/applicants/model"
)

func AuditLogService(d *Deps) *auditService.AuditLogService {
	return auditService.NewAuditLogService(datastore.Open[auditModel.AuditLogModel](d.DB))
}

// ✅ e.g. GET /api/admin/dashboard
func DashboardAdminRoutes(api fiber.Router, d *Deps, audit *auditService.AuditLogService) {
	overview := overviewService.NewOverviewService(
		datastore.Open[applicantModel.ApplicantModel](d.DB),
		datastore.Open[jobModel.JobModel](d.DB),
		datastore.Open[jobAppModel.JobApplicationModel](d.DB),
	)
	overviewRoute.DashboardAdminRoutes(api, overviewController.NewOverviewController(overview))
	auditRoute.AuditLogAdminRoutes(api, auditController.NewAuditLogController(audit))
}
