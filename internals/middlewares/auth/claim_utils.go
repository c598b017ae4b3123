package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/features/users/auth/session"
	helper "suryaghar_backend/internals/helpers"
)

const (
	LocUserID    = "user_id"
	LocUserRole  = "userRole"
	LocUserName  = "user_name"
	LocUserEmail = "user_email"
	LocIdentity  = "identity"
)

// extractBearerToken reads the Authorization header, then the cookie, and
// strips stray quotes some clients add.
func extractBearerToken(c *fiber.Ctx) string {
	tok := helper.GetRawAccessToken(c)
	return strings.Trim(strings.TrimSpace(tok), "\"'")
}

func storeIdentityToLocals(c *fiber.Ctx, ident *session.Identity, raw string) {
	c.Locals(LocUserID, ident.ID.String())
	c.Locals(LocUserRole, ident.Role)
	c.Locals(LocUserName, ident.UserName)
	c.Locals(LocUserEmail, ident.Email)
	c.Locals(LocIdentity, *ident)
	helper.SetRawAccessToken(c, raw)
}

// IdentityFrom returns the identity stored by the auth middlewares.
func IdentityFrom(c *fiber.Ctx) (session.Identity, bool) {
	ident, ok := c.Locals(LocIdentity).(session.Identity)
	return ident, ok
}
