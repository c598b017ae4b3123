package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/recruitment/applicants/controller"
	rateLimiter "suryaghar_backend/internals/middlewares"
)

func AllApplicantRoutes(public fiber.Router, ctrl *controller.ApplicantController) {
	public.Post("/applications", rateLimiter.SubmissionRateLimiter(), ctrl.Create)
}
