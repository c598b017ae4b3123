package controller

import (
	"github.com/gofiber/fiber/v2"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/features/users/auth/dto"
	"suryaghar_backend/internals/features/users/auth/service"
	"suryaghar_backend/internals/features/users/auth/session"
	helper "suryaghar_backend/internals/helpers"
	"suryaghar_backend/internals/helpers/validation"
)

type AuthController struct {
	Svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

func (ac *AuthController) respondSignedIn(c *fiber.Ctx, msg, token string, ident session.Identity) error {
	helper.SetAccessTokenCookie(c, token, ident.ExpiresAt)
	return helper.JsonOK(c, msg, fiber.Map{
		"user":         dto.FromIdentity(ident),
		"access_token": token,
		"expires_at":   ident.ExpiresAt,
	})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := validation.Check(req, dto.AuthMessages); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	token, ident, err := ac.Svc.Login(c.UserContext(), req, c.IP())
	if err != nil {
		return helper.JsonStoreError(c, err, "User")
	}
	return ac.respondSignedIn(c, "Login successful!", token, ident)
}

// POST /api/auth/otp
func (ac *AuthController) RequestOTP(c *fiber.Ctx) error {
	var req dto.OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := validation.Check(req, dto.AuthMessages); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if err := ac.Svc.RequestOTP(c.UserContext(), req.Email); err != nil {
		return helper.JsonStoreError(c, err, "Sign-up code")
	}
	return helper.JsonOK(c, "OTP sent to your email!", nil)
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := validation.Check(req, dto.AuthMessages); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	token, ident, err := ac.Svc.Register(c.UserContext(), req, c.IP())
	if err != nil {
		return helper.JsonStoreError(c, err, "User")
	}
	helper.SetAccessTokenCookie(c, token, ident.ExpiresAt)
	return helper.JsonCreated(c, "Admin account created successfully!", fiber.Map{
		"user":         dto.FromIdentity(ident),
		"access_token": token,
		"expires_at":   ident.ExpiresAt,
	})
}

// POST /api/auth/login-google
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req, nil); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	token, ident, err := ac.Svc.LoginGoogle(c.UserContext(), req.IDToken, c.IP())
	if err != nil {
		return helper.JsonStoreError(c, err, "User")
	}
	return ac.respondSignedIn(c, "Login successful!", token, ident)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if err := ac.Svc.Session.SignOut(c.UserContext(), raw, c.IP()); err != nil {
		return helper.JsonStoreError(c, err, "Session")
	}
	helper.ClearAccessTokenCookie(c)
	return helper.JsonOK(c, "Logged out", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	u, err := ac.Svc.Me(c.UserContext(), userID)
	if err != nil {
		return helper.JsonStoreError(c, err, "User")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"user": dto.FromUser(*u, constants.RoleAdmin)})
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req, dto.AuthMessages); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if err := ac.Svc.ChangePassword(c.UserContext(), userID, req); err != nil {
		return helper.JsonStoreError(c, err, "User")
	}
	return helper.JsonUpdated(c, "Password updated", nil)
}

// PUT /api/auth/profile
func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Check(req, dto.AuthMessages); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	u, err := ac.Svc.UpdateProfile(c.UserContext(), userID, req)
	if err != nil {
		return helper.JsonStoreError(c, err, "User")
	}
	return helper.JsonUpdated(c, "Profile updated", fiber.Map{"user": dto.FromUser(*u, constants.RoleAdmin)})
}
