package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/jobs/job_applications/controller"
	rateLimiter "suryaghar_backend/internals/middlewares"
)

func AllJobApplicationRoutes(public fiber.Router, ctrl *controller.JobApplicationController) {
	public.Post("/jobs/:id/applications", rateLimiter.SubmissionRateLimiter(), ctrl.Apply)
	public.Get("/my-applications", ctrl.Mine)
}
