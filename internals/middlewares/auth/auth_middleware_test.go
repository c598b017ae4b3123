package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/users/auth/model"
	"suryaghar_backend/internals/features/users/auth/session"
)

type fixture struct {
	app       *fiber.App
	mgr       *session.Manager
	users     *datastore.MemoryTable[model.UserModel]
	blacklist *datastore.MemoryTable[model.TokenBlacklist]
	token     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := datastore.NewMemoryTable[model.UserModel]("email")
	blacklist := datastore.NewMemoryTable[model.TokenBlacklist]("token")
	u := model.UserModel{Email: "admin@example.com", UserName: "admin", Password: "x", IsActive: true}
	require.NoError(t, users.Insert(context.Background(), &u))

	mgr := session.NewManager("test-secret", time.Hour, users, blacklist, nil)
	token, _, err := mgr.Issue(u)
	require.NoError(t, err)

	app := fiber.New()
	api := app.Group("/api/admin", AuthMiddleware(mgr), OnlyRoles(constants.RoleErrorAdmin("the back office"), constants.RoleAdmin))
	api.Get("/whoami", func(c *fiber.Ctx) error {
		ident, ok := IdentityFrom(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(ident.Email)
	})
	app.Get("/public", SecondAuthMiddleware(mgr), func(c *fiber.Ctx) error {
		if _, ok := IdentityFrom(c); ok {
			return c.SendString("admin")
		}
		return c.SendString("anonymous")
	})
	app.Get("/admin/*", AdminPageGuard(mgr), func(c *fiber.Ctx) error { return c.SendString("shell") })

	return &fixture{app: app, mgr: mgr, users: users, blacklist: blacklist, token: token}
}

func get(t *testing.T, app *fiber.App, path, token string) (int, string, http.Header) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body), resp.Header
}

func TestAuthMiddleware_AcceptsValidToken(t *testing.T) {
	f := newFixture(t)
	code, body, _ := get(t, f.app, "/api/admin/whoami", f.token)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "admin@example.com", body)
}

func TestAuthMiddleware_AcceptsCookie(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest("GET", "/api/admin/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: f.token})
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_RejectsMissingAndRevoked(t *testing.T) {
	f := newFixture(t)
	code, body, _ := get(t, f.app, "/api/admin/whoami", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Contains(t, body, "No token provided")

	require.NoError(t, f.mgr.SignOut(context.Background(), f.token, "127.0.0.1"))
	code, body, _ = get(t, f.app, "/api/admin/whoami", f.token)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Contains(t, body, "blacklisted")
}

func TestAuthMiddleware_DisabledAccount(t *testing.T) {
	f := newFixture(t)
	u := f.users.Rows()[0]
	_, err := f.users.Update(context.Background(), u.ID, map[string]any{"is_active": false})
	require.NoError(t, err)

	code, _, _ := get(t, f.app, "/api/admin/whoami", f.token)
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestSecondAuthMiddleware_AnonymousPassesThrough(t *testing.T) {
	f := newFixture(t)
	_, body, _ := get(t, f.app, "/public", "")
	assert.Equal(t, "anonymous", body)
	_, body, _ = get(t, f.app, "/public", "garbage")
	assert.Equal(t, "anonymous", body)
	_, body, _ = get(t, f.app, "/public", f.token)
	assert.Equal(t, "admin", body)
}

func TestAdminPageGuard_RedirectsWithoutTouchingTables(t *testing.T) {
	f := newFixture(t)
	boom := assert.AnError
	f.users.FailOn["Get"] = boom
	f.users.FailOn["Find"] = boom
	f.users.FailOn["First"] = boom
	f.blacklist.FailOn["First"] = boom
	f.blacklist.FailOn["Find"] = boom

	code, _, header := get(t, f.app, "/admin/jobs", "")
	assert.Equal(t, fiber.StatusFound, code)
	assert.Equal(t, "/login?next=%2Fadmin%2Fjobs", header.Get("Location"))

	code, body, _ := get(t, f.app, "/admin/jobs", f.token)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "shell", body)
}
