package helper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/configs"
)

const (
	LocRawToken       = "raw_token"
	AccessTokenCookie = "access_token"
)

// GetRawAccessToken returns the access token from, in order:
// 1) Authorization "Bearer <token>"
// 2) Locals("raw_token") set by the auth middleware
// 3) the "access_token" cookie
func GetRawAccessToken(c *fiber.Ctx) string {
	const p = "Bearer "
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > len(p) && strings.EqualFold(auth[:len(p)], p) {
		return strings.TrimSpace(auth[len(p):])
	}
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(c.Cookies(AccessTokenCookie))
}

func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}

func secureCookies() bool { return configs.GetEnvBool("COOKIE_SECURE", true) }

func SetAccessTokenCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		HTTPOnly: true,
		Secure:   secureCookies(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  expires,
	})
}

func ClearAccessTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		HTTPOnly: true,
		Secure:   secureCookies(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
}
