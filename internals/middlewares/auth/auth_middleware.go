// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/users/auth/session"
	helper "suryaghar_backend/internals/helpers"
)

// AuthMiddleware admits only requests carrying a valid, non-revoked token of
// an active admin.
func AuthMiddleware(mgr *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - No token provided")
		}

		ident, err := mgr.Resolve(c.UserContext(), tokenString)
		switch {
		case err == nil:
		case errors.Is(err, session.ErrRevoked):
			log.Println("[WARNING] Token found in blacklist")
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
		case errors.Is(err, session.ErrExpired):
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
		case errors.Is(err, session.ErrInactive):
			return helper.JsonError(c, fiber.StatusForbidden, "Your account has been disabled")
		case errors.Is(err, session.ErrInvalid):
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid token")
		case errors.Is(err, session.ErrNoSecret):
			log.Println("[ERROR] JWT_SECRET is empty")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		default:
			log.Printf("[ERROR] resolve session: %v", err)
			return helper.JsonStoreError(c, err, "Session")
		}

		storeIdentityToLocals(c, ident, tokenString)
		return c.Next()
	}
}
