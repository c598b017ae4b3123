package routes

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"suryaghar_backend/internals/configs"
	database "suryaghar_backend/internals/databases"
	authMiddleware "suryaghar_backend/internals/middlewares/auth"
	routeDetails "suryaghar_backend/internals/route/details"
)

func BaseRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		switch {
		case !database.Configured():
			dbStatus = "Not configured"
		case database.Ping() != nil:
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		body := fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		}
		if vm, err := mem.VirtualMemory(); err == nil {
			body["memory_used_percent"] = vm.UsedPercent
		}
		if up, err := host.Uptime(); err == nil {
			body["host_uptime_seconds"] = up
		}
		return c.Status(httpStatus).JSON(body)
	})
}

// WebRoutes serves the built single-page app from dir. /admin pages need a
// session before the shell is sent; any other unknown page gets index.html
// so the client router can resolve it.
func WebRoutes(app *fiber.App, d *routeDetails.Deps, dir string) {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); dir == "" || err != nil {
		log.Println("⚠️ WEB_DIST_DIR not set or missing index.html, front end not served")
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendString(configs.AppName + " API is running 🚀")
		})
		return
	}

	app.Use("/admin", authMiddleware.AdminPageGuard(d.Sessions))
	app.Static("/", dir, fiber.Static{Compress: true, MaxAge: 3600})
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api") {
			return fiber.ErrNotFound
		}
		c.Set(fiber.HeaderCacheControl, "no-cache")
		return c.SendFile(index)
	})
}
