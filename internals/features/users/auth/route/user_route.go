// file: internals/features/users/auth/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	controller "suryaghar_backend/internals/features/users/auth/controller"
	"suryaghar_backend/internals/features/users/auth/session"
	rateLimiter "suryaghar_backend/internals/middlewares"
	authMiddleware "suryaghar_backend/internals/middlewares/auth"
)

// AuthRoutes mounts /api/auth. Sign-in endpoints are public and rate limited;
// the account endpoints need a valid session.
func AuthRoutes(router fiber.Router, authController *controller.AuthController, mgr *session.Manager) {
	baseAuth := router.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/otp", rateLimiter.OTPRateLimiter(), authController.RequestOTP)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Post("/logout", authController.Logout)

	// 🔐 Signed in
	protectedAuth := baseAuth.Group("", authMiddleware.AuthMiddleware(mgr))
	protectedAuth.Get("/me", authController.Me)
	protectedAuth.Post("/change-password", authController.ChangePassword)
	protectedAuth.Put("/profile", authController.UpdateProfile)
}
