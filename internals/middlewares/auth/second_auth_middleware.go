package auth

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/users/auth/session"
)

// SecondAuthMiddleware attaches the identity when a valid token is present
// and otherwise lets the request through as anonymous.
func SecondAuthMiddleware(mgr *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			return c.Next()
		}
		ident, err := mgr.Resolve(c.UserContext(), tokenString)
		if err != nil {
			return c.Next()
		}
		storeIdentityToLocals(c, ident, tokenString)
		return c.Next()
	}
}
