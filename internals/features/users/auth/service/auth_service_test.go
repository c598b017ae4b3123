package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/users/auth/dto"
	"suryaghar_backend/internals/features/users/auth/model"
	"suryaghar_backend/internals/features/users/auth/session"
)

type fixture struct {
	svc    *AuthService
	users  *datastore.MemoryTable[model.UserModel]
	otps   *datastore.MemoryTable[model.AuthOTP]
	mailer *LogMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := datastore.NewMemoryTable[model.UserModel]("email", "google_id")
	otps := datastore.NewMemoryTable[model.AuthOTP]()
	blacklist := datastore.NewMemoryTable[model.TokenBlacklist]("token")
	mgr := session.NewManager("test-secret", time.Hour, users, blacklist, nil)
	t.Cleanup(mgr.Close)
	mailer := &LogMailer{}
	svc := NewAuthService(users, otps, mgr, mailer)
	svc.SignupAllowlist = nil
	svc.GoogleClientID = ""
	return &fixture{svc: svc, users: users, otps: otps, mailer: mailer}
}

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

var codeRe = regexp.MustCompile(`code is (\d{4})`)

func mailedCode(t *testing.T, m *LogMailer, email string) string {
	t.Helper()
	match := codeRe.FindStringSubmatch(m.Last(email))
	require.Len(t, match, 2, "no code in mail")
	return match[1]
}

func TestRegister_FirstAdminWithMailedCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RequestOTP(ctx, "first@example.com"))
	code := mailedCode(t, f.mailer, "first@example.com")

	token, ident, err := f.svc.Register(ctx, dto.RegisterRequest{
		Email: "first@example.com", OTP: code, UserName: "first", Password: "secret1", ConfirmPassword: "secret1",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "first@example.com", ident.Email)

	// the code is single use
	_, _, err = f.svc.Register(ctx, dto.RegisterRequest{
		Email: "first@example.com", OTP: code, UserName: "again", Password: "secret1", ConfirmPassword: "secret1",
	}, "127.0.0.1")
	assert.Error(t, err)

	// with one admin present, open sign-up is closed
	err = f.svc.RequestOTP(ctx, "second@example.com")
	assert.Equal(t, fiber.StatusForbidden, statusOf(err))
}

func TestRegister_WrongCodeCountsAttempts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.RequestOTP(ctx, "first@example.com"))
	code := mailedCode(t, f.mailer, "first@example.com")
	wrong := "0000"
	if code == wrong {
		wrong = "1111"
	}

	_, _, err := f.svc.Register(ctx, dto.RegisterRequest{
		Email: "first@example.com", OTP: wrong, UserName: "first", Password: "secret1", ConfirmPassword: "secret1",
	}, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, statusOf(err))
	require.Len(t, f.otps.Rows(), 1)
	assert.Equal(t, 1, f.otps.Rows()[0].Attempts)
	assert.Empty(t, f.users.Rows())
}

func TestRegister_ExpiredCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.RequestOTP(ctx, "first@example.com"))
	code := mailedCode(t, f.mailer, "first@example.com")

	f.svc.Now = func() time.Time { return time.Now().Add(11 * time.Minute) }
	_, _, err := f.svc.Register(ctx, dto.RegisterRequest{
		Email: "first@example.com", OTP: code, UserName: "first", Password: "secret1", ConfirmPassword: "secret1",
	}, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, statusOf(err))
}

func TestRequestOTP_Allowlist(t *testing.T) {
	f := newFixture(t)
	f.svc.SignupAllowlist = []string{"ops@example.com"}
	ctx := context.Background()

	assert.Equal(t, fiber.StatusForbidden, statusOf(f.svc.RequestOTP(ctx, "stranger@example.com")))
	require.NoError(t, f.svc.RequestOTP(ctx, "ops@example.com"))

	_, err := f.svc.CreateAdmin(ctx, dto.CreateAdminInput{Email: "ops@example.com", UserName: "ops", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, statusOf(f.svc.RequestOTP(ctx, "ops@example.com")))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := f.svc.CreateAdmin(ctx, dto.CreateAdminInput{Email: " Admin@Example.com ", UserName: "admin", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)

	_, ident, err := f.svc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "secret1"}, "")
	require.NoError(t, err)
	assert.Equal(t, u.ID, ident.ID)

	_, _, err = f.svc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "wrong!!"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, statusOf(err))
	_, _, err = f.svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, statusOf(err))

	_, err = f.users.Update(ctx, u.ID, map[string]any{"is_active": false})
	require.NoError(t, err)
	_, _, err = f.svc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "secret1"}, "")
	assert.Equal(t, fiber.StatusForbidden, statusOf(err))
}

func TestLoginGoogle_LinksExistingAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.LoginGoogle(ctx, "tok", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, statusOf(err))

	f.svc.GoogleClientID = "client"
	f.svc.VerifyGoogle = func(idToken, clientID string) (*GoogleProfile, error) {
		if idToken != "good" {
			return nil, errors.New("bad token")
		}
		return &GoogleProfile{Sub: "g-123", Email: "Admin@example.com", EmailVerified: true, Name: "Admin"}, nil
	}

	_, _, err = f.svc.LoginGoogle(ctx, "bad", "")
	assert.Equal(t, fiber.StatusUnauthorized, statusOf(err))
	_, _, err = f.svc.LoginGoogle(ctx, "good", "")
	assert.Equal(t, fiber.StatusForbidden, statusOf(err))

	u, err := f.svc.CreateAdmin(ctx, dto.CreateAdminInput{Email: "admin@example.com", UserName: "admin", Password: "secret1"})
	require.NoError(t, err)
	_, ident, err := f.svc.LoginGoogle(ctx, "good", "")
	require.NoError(t, err)
	assert.Equal(t, u.ID, ident.ID)

	stored, err := f.users.Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.GoogleID)
	assert.Equal(t, "g-123", *stored.GoogleID)
}

func TestLoginGoogle_UnverifiedEmailIsNotLinked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := f.svc.CreateAdmin(ctx, dto.CreateAdminInput{Email: "admin@example.com", UserName: "admin", Password: "secret1"})
	require.NoError(t, err)

	f.svc.GoogleClientID = "client"
	f.svc.VerifyGoogle = func(idToken, clientID string) (*GoogleProfile, error) {
		return &GoogleProfile{Sub: "g-evil", Email: "admin@example.com", EmailVerified: false}, nil
	}

	_, _, err = f.svc.LoginGoogle(ctx, "tok", "")
	assert.Equal(t, fiber.StatusForbidden, statusOf(err))

	stored, err := f.users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.GoogleID)
}

func TestChangePasswordAndProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := f.svc.CreateAdmin(ctx, dto.CreateAdminInput{Email: "admin@example.com", UserName: "admin", Password: "secret1"})
	require.NoError(t, err)

	err = f.svc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "secret2"})
	assert.Equal(t, fiber.StatusUnauthorized, statusOf(err))
	require.NoError(t, f.svc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"}))
	_, _, err = f.svc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "secret2"}, "")
	require.NoError(t, err)

	name := "  renamed "
	updated, err := f.svc.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{UserName: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.UserName)
}
