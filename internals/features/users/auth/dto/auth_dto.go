package dto

import (
	"strings"

	"suryaghar_backend/internals/features/users/auth/model"
	"suryaghar_backend/internals/features/users/auth/session"
	"suryaghar_backend/internals/helpers/validation"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type OTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	OTP             string `json:"otp" validate:"required,otp4"`
	UserName        string `json:"username" validate:"required,min=3,max=50"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type UpdateProfileRequest struct {
	UserName  *string `json:"username" validate:"omitempty,min=3,max=50"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

// CreateAdminInput backs the create-admin command.
type CreateAdminInput struct {
	Email    string `json:"email" validate:"required,email"`
	UserName string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

var AuthMessages = validation.Messages{
	"password.min":             "Password must be at least 6 characters",
	"new_password.min":         "Password must be at least 6 characters",
	"username.min":             "Username must be at least 3 characters",
	"otp":                      "OTP must be 4 digits",
	"confirm_password.eqfield": "Passwords don't match",
}

func (r *LoginRequest) Normalize() { r.Email = normalizeEmail(r.Email) }
func (r *OTPRequest) Normalize()   { r.Email = normalizeEmail(r.Email) }
func (r *RegisterRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
	r.UserName = strings.TrimSpace(r.UserName)
	r.OTP = strings.TrimSpace(r.OTP)
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	UserName  string `json:"username"`
	AvatarURL string `json:"avatar,omitempty"`
	Role      string `json:"role"`
}

func FromIdentity(id session.Identity) UserResponse {
	return UserResponse{
		ID:        id.ID.String(),
		Email:     id.Email,
		UserName:  id.UserName,
		AvatarURL: id.Avatar,
		Role:      id.Role,
	}
}

func FromUser(u model.UserModel, role string) UserResponse {
	out := UserResponse{ID: u.ID.String(), Email: u.Email, UserName: u.UserName, Role: role}
	if u.AvatarURL != nil {
		out.AvatarURL = *u.AvatarURL
	}
	return out
}
