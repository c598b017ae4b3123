package auth

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/users/auth/session"
)

// AdminPageGuard protects the back-office pages of the single-page app. A
// visitor without a well-formed, unexpired token is sent to /login before
// any table is read; the API behind the pages does the full check.
func AdminPageGuard(mgr *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := mgr.Parse(extractBearerToken(c)); err != nil {
			next := url.QueryEscape(c.OriginalURL())
			return c.Redirect("/login?next="+next, fiber.StatusFound)
		}
		return c.Next()
	}
}
