package controller

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/users/auth/model"
	"suryaghar_backend/internals/features/users/auth/service"
	"suryaghar_backend/internals/features/users/auth/session"
	helper "suryaghar_backend/internals/helpers"
)

// routes are mounted by hand to keep the rate limiters out of the test
func newApp(t *testing.T) (*fiber.App, *datastore.MemoryTable[model.TokenBlacklist]) {
	t.Helper()
	users := datastore.NewMemoryTable[model.UserModel]("email", "google_id")
	otps := datastore.NewMemoryTable[model.AuthOTP]()
	blacklist := datastore.NewMemoryTable[model.TokenBlacklist]("token")

	hash, err := service.HashPassword("secret1")
	require.NoError(t, err)
	u := model.UserModel{Email: "admin@example.com", UserName: "admin", Password: hash, IsActive: true}
	require.NoError(t, users.Insert(context.Background(), &u))

	mgr := session.NewManager("test-secret", time.Hour, users, blacklist, nil)
	t.Cleanup(mgr.Close)
	ctrl := NewAuthController(service.NewAuthService(users, otps, mgr, &service.LogMailer{}))

	app := fiber.New()
	g := app.Group("/api/auth")
	g.Post("/login", ctrl.Login)
	g.Post("/logout", ctrl.Logout)
	g.Get("/me", func(c *fiber.Ctx) error {
		ident, err := mgr.Resolve(c.UserContext(), helper.GetRawAccessToken(c))
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		c.Locals("user_id", ident.ID.String())
		return c.Next()
	}, ctrl.Me)
	return app, blacklist
}

func do(t *testing.T, app *fiber.App, method, path, body, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func TestLogin_Rejections(t *testing.T) {
	app, _ := newApp(t)

	resp, body := do(t, app, http.MethodPost, "/api/auth/login", `{"email":"nope","password":"secret1"}`, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, `"email"`)

	resp, body = do(t, app, http.MethodPost, "/api/auth/login", `{"email":"admin@example.com","password":"wrong-pass"}`, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid email or password")
}

func TestLogin_MeLogout(t *testing.T) {
	app, blacklist := newApp(t)

	resp, body := do(t, app, http.MethodPost, "/api/auth/login", `{"email":"Admin@Example.com","password":"secret1"}`, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Contains(t, resp.Header.Get("Set-Cookie"), helper.AccessTokenCookie+"=")

	var token string
	for _, ck := range resp.Cookies() {
		if ck.Name == helper.AccessTokenCookie {
			token = ck.Value
		}
	}
	require.NotEmpty(t, token)

	resp, body = do(t, app, http.MethodGet, "/api/auth/me", "", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "admin@example.com")

	resp, _ = do(t, app, http.MethodPost, "/api/auth/logout", "", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, blacklist.Rows(), 1)

	resp, _ = do(t, app, http.MethodGet, "/api/auth/me", "", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
