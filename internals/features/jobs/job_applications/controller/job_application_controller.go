package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/jobs/job_applications/dto"
	"suryaghar_backend/internals/features/jobs/job_applications/model"
	"suryaghar_backend/internals/features/jobs/job_applications/service"
	helper "suryaghar_backend/internals/helpers"
	"suryaghar_backend/internals/helpers/storage"
	"suryaghar_backend/internals/helpers/validation"
)

type JobApplicationController struct {
	Svc *service.JobApplicationService
}

func NewJobApplicationController(svc *service.JobApplicationService) *JobApplicationController {
	return &JobApplicationController{Svc: svc}
}

func (ctrl *JobApplicationController) responses(c *fiber.Ctx, rows []model.JobApplicationModel) []dto.ApplicationResponse {
	titles := ctrl.Svc.JobTitles(c.UserContext(), rows)
	out := dto.FromModels(rows)
	for i := range out {
		out[i].JobTitle = titles[out[i].JobID]
	}
	return out
}

/* ==========================  PUBLIC  ========================== */

// ➕ POST /api/public/jobs/:id/applications (multipart, resume optional)
func (ctrl *JobApplicationController) Apply(c *fiber.Ctx) error {
	jobID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	form := dto.ApplyFormFrom(helper.FormGetter(c))
	errs := validation.Check(form, dto.ApplyMessages)
	resume := helper.OptionalFormFile(c, dto.FieldResume)
	for field, msgs := range service.CheckResume(resume) {
		if errs == nil {
			errs = validation.Errors{}
		}
		for _, m := range msgs {
			errs.Add(field, m)
		}
	}
	if errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	row, err := ctrl.Svc.Apply(c.UserContext(), jobID, form, resume)
	if err != nil {
		if fe, ok := storage.IsFileError(err); ok {
			return helper.JsonValidationError(c, map[string][]string{fe.Field: {fe.Msg}})
		}
		return helper.JsonStoreError(c, err, "Job")
	}
	return helper.JsonCreated(c, "Application sent! The employer will contact you soon.", dto.FromModel(*row))
}

// 📄 GET /api/public/my-applications?email=
func (ctrl *JobApplicationController) Mine(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		return helper.JsonValidationError(c, map[string][]string{"email": {"Email is required"}})
	}
	rows, err := ctrl.Svc.Mine(c.UserContext(), email)
	if err != nil {
		return helper.JsonStoreError(c, err, "Applications")
	}
	return helper.JsonOK(c, "ok", ctrl.responses(c, rows))
}

/* ==========================  ADMIN  ========================== */

func parseFilter(c *fiber.Ctx) (dto.Filter, error) {
	f := dto.Filter{
		Status: strings.TrimSpace(c.Query("status")),
		Q:      strings.TrimSpace(c.Query("q")),
		Sort:   strings.ToLower(strings.TrimSpace(c.Query("sort", dto.SortRecent))),
	}
	if strings.EqualFold(f.Status, "all") {
		f.Status = ""
	}
	if raw := strings.TrimSpace(c.Query("job_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "job_id is not a valid UUID")
		}
		f.JobID = &id
	}
	return f, nil
}

// 📄 GET /api/admin/job-applications?job_id=&status=&sort=recent|rating|status
func (ctrl *JobApplicationController) List(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	rows, total, err := ctrl.Svc.List(c.UserContext(), f, p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonStoreError(c, err, "Applications")
	}
	stats, err := ctrl.Svc.Stats(c.UserContext(), f.JobID)
	if err != nil {
		log.Printf("[WARN] job application stats: %v", err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	pg.Count = len(rows)
	return helper.JsonListEx(c, "ok", ctrl.responses(c, rows), &pg, fiber.Map{"stats": stats})
}

// 🔍 GET /api/admin/job-applications/:id
func (ctrl *JobApplicationController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctrl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonStoreError(c, err, "Application")
	}
	return helper.JsonOK(c, "ok", ctrl.responses(c, []model.JobApplicationModel{*row})[0])
}

// ✏️ PATCH /api/admin/job-applications/:id/status
func (ctrl *JobApplicationController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req, nil); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	row, err := ctrl.Svc.UpdateStatus(c.UserContext(), id, req.Status, req.Notes)
	if err != nil {
		return helper.JsonStoreError(c, err, "Application")
	}
	events.RecordAdmin(c, ctrl.Svc.Bus, "UPDATE_JOB_APPLICATION_STATUS", "job_applications", &row.ID, map[string]any{"status": req.Status})
	return helper.JsonUpdated(c, "Status updated to "+req.Status, dto.FromModel(*row))
}

// ⭐ PATCH /api/admin/job-applications/:id/rating
func (ctrl *JobApplicationController) Rate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req, validation.Messages{"rating": "Rating must be between 1 and 5"}); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	row, err := ctrl.Svc.Rate(c.UserContext(), id, req.Rating, req.Notes)
	if err != nil {
		return helper.JsonStoreError(c, err, "Application")
	}
	events.RecordAdmin(c, ctrl.Svc.Bus, "RATE_JOB_APPLICATION", "job_applications", &row.ID, map[string]any{"rating": req.Rating})
	return helper.JsonUpdated(c, "Rating saved", dto.FromModel(*row))
}

// ✏️ PATCH /api/admin/job-applications/bulk/status
func (ctrl *JobApplicationController) BulkStatus(c *fiber.Ctx) error {
	var req dto.BulkStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req, nil); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	ids, err := helper.ParseUUIDList(req.IDs)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := ctrl.Svc.BulkStatus(c.UserContext(), ids, req.Status)
	if err != nil {
		return helper.JsonStoreError(c, err, "Applications")
	}
	events.RecordAdmin(c, ctrl.Svc.Bus, "BULK_UPDATE_JOB_APPLICATION_STATUS", "job_applications", nil, map[string]any{"status": req.Status, "ids": req.IDs})
	return helper.JsonUpdated(c, "Applications updated", fiber.Map{"updated": n, "status": req.Status})
}

// 🗑️ DELETE /api/admin/job-applications/:id
func (ctrl *JobApplicationController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctrl.Svc.Delete(c.UserContext(), id)
	if err != nil {
		return helper.JsonStoreError(c, err, "Application")
	}
	events.RecordAdmin(c, ctrl.Svc.Bus, "DELETE_JOB_APPLICATION", "job_applications", &row.ID, map[string]any{"full_name": row.FullName})
	return helper.JsonDeleted(c, "Application deleted", fiber.Map{"id": row.ID})
}

// 📥 GET /api/admin/job-applications/export?job_id=
func (ctrl *JobApplicationController) Export(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	data, n, err := ctrl.Svc.Export(c.UserContext(), f)
	if err != nil {
		return helper.JsonStoreError(c, err, "Applications export")
	}
	log.Printf("[INFO] 📥 exported %d job applications", n)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.ExportFileName(time.Now())+`"`)
	return c.Send(data)
}
