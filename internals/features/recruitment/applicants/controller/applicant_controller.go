package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/recruitment/applicants/dto"
	"suryaghar_backend/internals/features/recruitment/applicants/service"
	helper "suryaghar_backend/internals/helpers"
	"suryaghar_backend/internals/helpers/storage"
	"suryaghar_backend/internals/helpers/validation"
)

type ApplicantController struct {
	Svc *service.ApplicantService
}

func NewApplicantController(svc *service.ApplicantService) *ApplicantController {
	return &ApplicantController{Svc: svc}
}

var applicantSorts = map[string]string{
	"created_at": "created_at",
	"full_name":  "full_name",
	"state":      "state",
	"status":     "status",
}

/* ==========================  PUBLIC  ========================== */

// ➕ POST /api/public/applications (multipart)
func (ctrl *ApplicantController) Create(c *fiber.Ctx) error {
	form, errs := dto.ApplicantFormFrom(helper.FormGetter(c))
	for field, msgs := range validation.Check(form, dto.ApplicantMessages) {
		for _, m := range msgs {
			errs.Add(field, m)
		}
	}

	files := service.Attachments{
		Resume:  helper.OptionalFormFile(c, dto.FieldResume),
		Aadhaar: helper.OptionalFormFile(c, dto.FieldAadhaar),
		Photo:   helper.OptionalFormFile(c, dto.FieldPhoto),
	}
	for field, msgs := range service.CheckAttachments(files) {
		for _, m := range msgs {
			errs.Add(field, m)
		}
	}
	if len(errs) > 0 {
		return helper.JsonValidationError(c, errs)
	}

	row, err := ctrl.Svc.Create(c.UserContext(), form, files)
	if err != nil {
		if fe, ok := storage.IsFileError(err); ok {
			return helper.JsonValidationError(c, map[string][]string{fe.Field: {fe.Msg}})
		}
		return helper.JsonStoreError(c, err, "Application")
	}
	return helper.JsonCreated(c, "Application submitted successfully! We will contact you soon.", dto.FromModel(*row))
}

/* ==========================  ADMIN  ========================== */

func parseFilter(c *fiber.Ctx) (dto.ApplicantFilter, error) {
	all := func(v string) string {
		v = strings.TrimSpace(v)
		if strings.EqualFold(v, "all") {
			return ""
		}
		return v
	}
	f := dto.ApplicantFilter{
		Q:             strings.TrimSpace(c.Query("q")),
		State:         all(c.Query("state")),
		Position:      all(c.Query("position")),
		Status:        all(c.Query("status")),
		Qualification: all(c.Query("qualification")),
	}
	var err error
	if f.From, err = helper.ParseDateQuery(c, "from", false); err != nil {
		return f, err
	}
	if f.To, err = helper.ParseDateQuery(c, "to", true); err != nil {
		return f, err
	}
	return f, nil
}

// 📄 GET /api/admin/applicants
func (ctrl *ApplicantController) List(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	rows, total, err := ctrl.Svc.List(c.UserContext(), f, p.SafeOrder(applicantSorts, "created_at"), p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonStoreError(c, err, "Applicants")
	}
	counts, err := ctrl.Svc.Counts(c.UserContext())
	if err != nil {
		log.Printf("[WARN] applicant counts: %v", err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	pg.Count = len(rows)
	return helper.JsonListEx(c, "ok", dto.FromModels(rows), &pg, fiber.Map{"counts": counts})
}

// 🔍 GET /api/admin/applicants/:id
func (ctrl *ApplicantController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctrl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonStoreError(c, err, "Applicant")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*row))
}

// ✏️ PATCH /api/admin/applicants/:id/status
func (ctrl *ApplicantController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req, nil); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	row, err := ctrl.Svc.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return helper.JsonStoreError(c, err, "Applicant")
	}
	events.RecordAdmin(c, ctrl.Svc.Bus, "UPDATE_APPLICANT_STATUS", "applicants", &row.ID, map[string]any{"status": req.Status})
	return helper.JsonUpdated(c, "Status updated to "+req.Status, dto.FromModel(*row))
}

// ✏️ PATCH /api/admin/applicants/bulk/status
func (ctrl *ApplicantController) BulkStatus(c *fiber.Ctx) error {
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
		return helper.JsonStoreError(c, err, "Applicants")
	}
	events.RecordAdmin(c, ctrl.Svc.Bus, "BULK_UPDATE_APPLICANT_STATUS", "applicants", nil, map[string]any{"status": req.Status, "ids": req.IDs})
	return helper.JsonUpdated(c, "Applications updated", fiber.Map{"updated": n, "status": req.Status})
}

// 🗑️ DELETE /api/admin/applicants/:id
func (ctrl *ApplicantController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctrl.Svc.Delete(c.UserContext(), id)
	if err != nil {
		return helper.JsonStoreError(c, err, "Applicant")
	}
	events.RecordAdmin(c, ctrl.Svc.Bus, "DELETE_APPLICANT", "applicants", &row.ID, map[string]any{"full_name": row.FullName})
	return helper.JsonDeleted(c, "Applicant deleted", fiber.Map{"id": row.ID})
}

// 📥 GET /api/admin/applicants/export
func (ctrl *ApplicantController) Export(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	buf, n, err := ctrl.Svc.Export(c.UserContext(), f)
	if err != nil {
		return helper.JsonStoreError(c, err, "Applicants export")
	}
	log.Printf("[INFO] 📥 exported %d applicants", n)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.ExportFileName(time.Now())+`"`)
	return c.Send(buf.Bytes())
}
