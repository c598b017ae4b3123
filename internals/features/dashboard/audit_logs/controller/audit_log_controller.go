package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"suryaghar_backend/internals/features/dashboard/audit_logs/dto"
	"suryaghar_backend/internals/features/dashboard/audit_logs/service"
	helper "suryaghar_backend/internals/helpers"
)

type AuditLogController struct {
	Svc *service.AuditLogService
}

func NewAuditLogController(svc *service.AuditLogService) *AuditLogController {
	return &AuditLogController{Svc: svc}
}

// 🧾 GET /api/admin/audit-logs?action=&entity_type=&admin_id=&from=&to=
func (ctrl *AuditLogController) List(c *fiber.Ctx) error {
	f := dto.Filter{
		Action:     dto.NormalizeAction(c.Query("action")),
		EntityType: strings.TrimSpace(c.Query("entity_type")),
	}
	if raw := strings.TrimSpace(c.Query("admin_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid admin_id")
		}
		f.AdminID = &id
	}
	var err error
	if f.From, err = helper.ParseDateQuery(c, "from", false); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.To, err = helper.ParseDateQuery(c, "to", true); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	rows, total, err := ctrl.Svc.List(c.UserContext(), f, p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonStoreError(c, err, "Audit logs")
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	pg.Count = len(rows)
	return helper.JsonList(c, "ok", dto.FromModels(rows), &pg)
}
