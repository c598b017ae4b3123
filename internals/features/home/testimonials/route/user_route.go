package route

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/home/testimonials/controller"
)

func AllTestimonialRoutes(public fiber.Router, ctrl *controller.TestimonialController) {
	public.Get("/testimonials", ctrl.List)
}
