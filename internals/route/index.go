// file: internals/route/index.go
package routes

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/configs"
	"suryaghar_backend/internals/constants"
	authMiddleware "suryaghar_backend/internals/middlewares/auth"
	routeDetails "suryaghar_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes subscribes the notification and audit listeners, then mounts
// every route group. The front end is mounted last so /api paths win.
func SetupRoutes(app *fiber.App, d *routeDetails.Deps) error {
	startTime = time.Now()

	// ===================== LISTENERS =====================
	notifications := routeDetails.NotificationService(d)
	if err := notifications.Subscribe(d.Bus); err != nil {
		return fmt.Errorf("subscribe notifications: %w", err)
	}
	audit := routeDetails.AuditLogService(d)
	if err := audit.Subscribe(d.Bus, d.Sessions); err != nil {
		return fmt.Errorf("subscribe audit log: %w", err)
	}

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app)

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, d)

	// ===================== GROUPS =====================

	// PUBLIC → no token; submissions carry their own rate limits
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ADMIN → token + admin role
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/admin",
		authMiddleware.AuthMiddleware(d.Sessions),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("the back office"), constants.AdminOnly...),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Recruitment routes...")
	routeDetails.RecruitmentPublicRoutes(public, d)
	routeDetails.RecruitmentAdminRoutes(admin, d)

	log.Println("[INFO] Mounting Jobs routes...")
	routeDetails.JobsPublicRoutes(public, d)
	routeDetails.JobsAdminRoutes(admin, d)

	log.Println("[INFO] Mounting Home routes...")
	routeDetails.HomePublicRoutes(public, d)
	routeDetails.HomeAdminRoutes(admin, d, notifications)

	log.Println("[INFO] Mounting Forms routes...")
	routeDetails.FormsPublicRoutes(public)

	log.Println("[INFO] Mounting Dashboard routes...")
	routeDetails.DashboardAdminRoutes(admin, d, audit)

	log.Println("[INFO] Mounting front end...")
	WebRoutes(app, d, configs.GetEnv("WEB_DIST_DIR"))
	return nil
}
