package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/jobs/jobs/controller"
	"suryaghar_backend/internals/features/users/auth/session"
	rateLimiter "suryaghar_backend/internals/middlewares"
	authMw "suryaghar_backend/internals/middlewares/auth"
)

func AllJobRoutes(public fiber.Router, ctrl *controller.JobController, mgr *session.Manager) {
	g := public.Group("/jobs")
	g.Get("/", ctrl.Board)                                        // 📄 job board
	g.Post("/", rateLimiter.SubmissionRateLimiter(), ctrl.Create) // ➕ post a job (pending)
	g.Get("/featured", ctrl.Featured)                             // ⭐ featured
	g.Get("/trending", ctrl.Trending)                             // 🔥 most viewed
	g.Get("/saved", ctrl.Saved)                                   // 🔖 saved by email
	g.Get("/:id", authMw.SecondAuthMiddleware(mgr), ctrl.Detail)  // 🔍 detail + view count
	g.Post("/:id/save", ctrl.Save)                                // 🔖 save
	g.Delete("/:id/save", ctrl.Unsave)                            // 🗑️ unsave
}
