package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/jobs/jobs/dto"
	"suryaghar_backend/internals/features/jobs/jobs/service"
	helper "suryaghar_backend/internals/helpers"
	"suryaghar_backend/internals/helpers/validation"
	"suryaghar_backend/internals/middlewares/auth"
)

type JobController struct {
	Svc *service.JobService
}

func NewJobController(svc *service.JobService) *JobController {
	return &JobController{Svc: svc}
}

var jobSorts = map[string]string{
	"created_at":  "created_at",
	"title":       "title",
	"views_count": "views_count",
	"status":      "status",
}

/* ==========================  PUBLIC  ========================== */

// 📄 GET /api/public/jobs?q=&location=&category=&job_type=&sort=&page=
func (ctrl *JobController) Board(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.JobBoardOpts)
	f := dto.ListingFilter{
		Keyword:  c.Query("q"),
		Location: c.Query("location"),
		Category: strings.TrimSpace(c.Query("category")),
		JobType:  strings.TrimSpace(c.Query("job_type")),
		Sort:     strings.ToLower(strings.TrimSpace(c.Query("sort", dto.SortRecent))),
		Page:     p.Page,
	}
	rows, pg, err := ctrl.Svc.Board(c.UserContext(), f)
	if err != nil {
		return helper.JsonStoreError(c, err, "Jobs")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), &pg)
}

// ⭐ GET /api/public/jobs/featured
func (ctrl *JobController) Featured(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.Featured(c.UserContext())
	if err != nil {
		return helper.JsonStoreError(c, err, "Jobs")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// 🔥 GET /api/public/jobs/trending
func (ctrl *JobController) Trending(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.Trending(c.UserContext())
	if err != nil {
		return helper.JsonStoreError(c, err, "Jobs")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// 🔍 GET /api/public/jobs/:id
func (ctrl *JobController) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ident, signedIn := auth.IdentityFrom(c)
	viewer := service.Viewer{
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Admin:     signedIn && ident.Role == constants.RoleAdmin,
	}
	job, err := ctrl.Svc.Detail(c.UserContext(), id, viewer)
	if err != nil {
		return helper.JsonStoreError(c, err, "Job")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*job))
}

// ➕ POST /api/public/jobs
func (ctrl *JobController) Create(c *fiber.Ctx) error {
	var form dto.JobForm
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		body := map[string]any{}
		if err := c.BodyParser(&body); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		form = dto.JobFormFrom(helper.MapGetter(body))
	} else {
		form = dto.JobFormFrom(helper.FormGetter(c))
	}
	if errs := validation.Check(form, dto.JobMessages); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	job, err := ctrl.Svc.Create(c.UserContext(), form)
	if err != nil {
		return helper.JsonStoreError(c, err, "Job")
	}
	return helper.JsonCreated(c, "Job posted successfully! It will be visible after admin approval.", dto.FromModel(*job))
}

// 🔖 POST /api/public/jobs/:id/save
func (ctrl *JobController) Save(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req, nil); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	row, err := ctrl.Svc.Save(c.UserContext(), id, req.Email)
	if err != nil {
		return helper.JsonStoreError(c, err, "Job")
	}
	return helper.JsonCreated(c, "Job saved", row)
}

// 🗑️ DELETE /api/public/jobs/:id/save?email=
func (ctrl *JobController) Unsave(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return helper.JsonValidationError(c, map[string][]string{"email": {"Email is required"}})
	}
	if err := ctrl.Svc.Unsave(c.UserContext(), id, email); err != nil {
		return helper.JsonStoreError(c, err, "Saved job")
	}
	return helper.JsonDeleted(c, "Job removed from saved list", fiber.Map{"job_id": id})
}

// 📄 GET /api/public/jobs/saved?email=
func (ctrl *JobController) Saved(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return helper.JsonValidationError(c, map[string][]string{"email": {"Email is required"}})
	}
	rows, err := ctrl.Svc.Saved(c.UserContext(), email)
	if err != nil {
		return helper.JsonStoreError(c, err, "Saved jobs")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

/* ==========================  ADMIN  ========================== */

// 📄 GET /api/admin/jobs?status=&category=&q=
func (ctrl *JobController) AdminList(c *fiber.Ctx) error {
	all := func(v string) string {
		v = strings.TrimSpace(v)
		if strings.EqualFold(v, "all") || v == constants.JobCategoryAll {
			return ""
		}
		return v
	}
	f := dto.AdminFilter{
		Status:   all(c.Query("status")),
		Category: all(c.Query("category")),
		Q:        strings.TrimSpace(c.Query("q")),
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	rows, total, err := ctrl.Svc.AdminList(c.UserContext(), f, p.SafeOrder(jobSorts, "created_at"), p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonStoreError(c, err, "Jobs")
	}
	counts, err := ctrl.Svc.StatusCounts(c.UserContext())
	if err != nil {
		log.Printf("[WARN] job counts: %v", err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	pg.Count = len(rows)
	return helper.JsonListEx(c, "ok", dto.FromModels(rows), &pg, fiber.Map{"counts": counts})
}

// 🔍 GET /api/admin/jobs/:id
func (ctrl *JobController) AdminGet(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	job, err := ctrl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonStoreError(c, err, "Job")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*job))
}

func (ctrl *JobController) moderate(c *fiber.Ctx, status, reason, action, msg string) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	job, err := ctrl.Svc.SetStatus(c.UserContext(), id, status, reason)
	if err != nil {
		return helper.JsonStoreError(c, err, "Job")
	}
	changes := map[string]any{"status": status, "title": job.Title}
	if reason != "" {
		changes["reason"] = reason
	}
	events.RecordAdmin(c, ctrl.Svc.Bus, action, "jobs", &job.ID, changes)
	return helper.JsonUpdated(c, msg, dto.FromModel(*job))
}

// ✅ PATCH /api/admin/jobs/:id/approve
func (ctrl *JobController) Approve(c *fiber.Ctx) error {
	return ctrl.moderate(c, constants.JobApproved, "", "APPROVE_JOB", "Job approved")
}

// ❌ PATCH /api/admin/jobs/:id/reject
func (ctrl *JobController) Reject(c *fiber.Ctx) error {
	var req dto.RejectRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if errs := validation.Check(req, nil); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	return ctrl.moderate(c, constants.JobRejected, strings.TrimSpace(req.Reason), "REJECT_JOB", "Job rejected")
}

// 🔒 PATCH /api/admin/jobs/:id/close
func (ctrl *JobController) Close(c *fiber.Ctx) error {
	return ctrl.moderate(c, constants.JobClosed, "", "CLOSE_JOB", "Job closed")
}

// ✏️ PATCH /api/admin/jobs/:id/status
func (ctrl *JobController) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req, nil); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	return ctrl.moderate(c, req.Status, "", "UPDATE_JOB_STATUS", "Status updated to "+req.Status)
}

// ⭐ PATCH /api/admin/jobs/:id/feature
func (ctrl *JobController) Feature(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.FeatureRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	featured := false
	if req.Featured != nil {
		featured = *req.Featured
	} else {
		cur, err := ctrl.Svc.Get(c.UserContext(), id)
		if err != nil {
			return helper.JsonStoreError(c, err, "Job")
		}
		featured = !cur.IsFeatured
	}

	job, err := ctrl.Svc.SetFeatured(c.UserContext(), id, featured)
	if err != nil {
		return helper.JsonStoreError(c, err, "Job")
	}
	action := "UNFEATURE_JOB"
	if featured {
		action = "FEATURE_JOB"
	}
	events.RecordAdmin(c, ctrl.Svc.Bus, action, "jobs", &job.ID, map[string]any{"is_featured": featured})
	return helper.JsonUpdated(c, "Featured flag updated", dto.FromModel(*job))
}

func (ctrl *JobController) bulk(c *fiber.Ctx, status, action string) error {
	var req dto.BulkRequest
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
	n, err := ctrl.Svc.BulkStatus(c.UserContext(), ids, status, req.Reason)
	if err != nil {
		return helper.JsonStoreError(c, err, "Jobs")
	}
	events.RecordAdmin(c, ctrl.Svc.Bus, action, "jobs", nil, map[string]any{"status": status, "ids": req.IDs})
	return helper.JsonUpdated(c, "Jobs updated", fiber.Map{"updated": n, "status": status})
}

// ✅ POST /api/admin/jobs/bulk/approve
func (ctrl *JobController) BulkApprove(c *fiber.Ctx) error {
	return ctrl.bulk(c, constants.JobApproved, "BULK_APPROVE_JOB")
}

// ❌ POST /api/admin/jobs/bulk/reject
func (ctrl *JobController) BulkReject(c *fiber.Ctx) error {
	return ctrl.bulk(c, constants.JobRejected, "BULK_REJECT_JOB")
}

// 🗑️ DELETE /api/admin/jobs/:id
func (ctrl *JobController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	job, err := ctrl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonStoreError(c, err, "Job")
	}
	if err := ctrl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonStoreError(c, err, "Job")
	}
	events.RecordAdmin(c, ctrl.Svc.Bus, "DELETE_JOB", "jobs", &job.ID, map[string]any{"title": job.Title})
	return helper.JsonDeleted(c, "Job deleted", fiber.Map{"id": id})
}
