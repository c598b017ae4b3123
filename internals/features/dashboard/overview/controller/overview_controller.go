package controller

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/dashboard/overview/service"
	helper "suryaghar_backend/internals/helpers"
)

type OverviewController struct {
	Svc *service.OverviewService
}

func NewOverviewController(svc *service.OverviewService) *OverviewController {
	return &OverviewController{Svc: svc}
}

// 📊 GET /api/admin/dashboard
func (ctrl *OverviewController) Overview(c *fiber.Ctx) error {
	out, err := ctrl.Svc.Overview(c.UserContext())
	if err != nil {
		return helper.JsonStoreError(c, err, "Dashboard")
	}
	return helper.JsonOK(c, "ok", out)
}
