package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"suryaghar_backend/internals/configs"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/users/auth/dto"
	"suryaghar_backend/internals/features/users/auth/model"
	"suryaghar_backend/internals/features/users/auth/session"
)

/* ==========================
   Const & Types
========================== */

const (
	otpTTL         = 10 * time.Minute
	otpMaxAttempts = 5
)

type GoogleProfile struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
}

type GoogleVerifier func(idToken, clientID string) (*GoogleProfile, error)

type AuthService struct {
	Users   datastore.Table[model.UserModel]
	OTPs    datastore.Table[model.AuthOTP]
	Session *session.Manager
	Mailer  Mailer

	GoogleClientID  string
	VerifyGoogle    GoogleVerifier
	SignupAllowlist []string
	Now             func() time.Time
}

func NewAuthService(users datastore.Table[model.UserModel], otps datastore.Table[model.AuthOTP], mgr *session.Manager, mailer Mailer) *AuthService {
	var allow []string
	for _, e := range strings.Split(configs.GetEnv("ADMIN_SIGNUP_EMAILS"), ",") {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			allow = append(allow, e)
		}
	}
	return &AuthService{
		Users:           users,
		OTPs:            otps,
		Session:         mgr,
		Mailer:          mailer,
		GoogleClientID:  configs.GoogleClientID,
		VerifyGoogle:    VerifyGoogleIDToken,
		SignupAllowlist: allow,
		Now:             time.Now,
	}
}

// VerifyGoogleIDToken checks the token against Google's keys and audience.
func VerifyGoogleIDToken(idToken, clientID string) (*GoogleProfile, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
		return nil, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	return &GoogleProfile{
		Sub:           claimSet.Sub,
		Email:         claimSet.Email,
		EmailVerified: claimSet.EmailVerified,
		Name:          claimSet.Name,
	}, nil
}

/* ==========================
   Small Helpers
========================== */

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	return s.Users.First(ctx, datastore.Where(datastore.Eq("email", email)))
}

func (s *AuthService) signupAllowed(ctx context.Context, email string) (bool, error) {
	if len(s.SignupAllowlist) > 0 {
		for _, e := range s.SignupAllowlist {
			if e == email {
				return true, nil
			}
		}
		return false, nil
	}
	// without an allowlist only the very first admin may sign up
	n, err := s.Users.Count(ctx, datastore.Query{})
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

/* ==========================
   LOGIN (email + password)
========================== */

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest, ip string) (string, session.Identity, error) {
	u, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		if datastore.IsNotFound(err) {
			return "", session.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		return "", session.Identity{}, err
	}
	if err := CheckPasswordHash(u.Password, req.Password); err != nil {
		return "", session.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !u.IsActive {
		return "", session.Identity{}, fiber.NewError(fiber.StatusForbidden, "Your account has been disabled. Contact an administrator.")
	}
	return s.Session.SignIn(*u, "password", ip)
}

/* ==========================
   SIGN-UP (one-time code)
========================== */

func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	ok, err := s.signupAllowed(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, "Admin sign-up is not open for this email")
	}
	if _, err := s.findByEmail(ctx, email); err == nil {
		return fiber.NewError(fiber.StatusConflict, "Email already registered")
	} else if !datastore.IsNotFound(err) {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash code: %w", err)
	}
	row := model.AuthOTP{Email: email, CodeHash: string(hash), ExpiresAt: s.Now().Add(otpTTL)}
	if err := s.OTPs.Insert(ctx, &row); err != nil {
		return err
	}
	if err := s.Mailer.Send(ctx, email, configs.AppName+" sign-up code", renderOTPMail(code, int(otpTTL/time.Minute))); err != nil {
		log.Printf("[ERROR] send sign-up code to %s: %v", email, err)
		return fiber.NewError(fiber.StatusBadGateway, "Failed to send OTP")
	}
	return nil
}

func (s *AuthService) consumeOTP(ctx context.Context, email, code string) error {
	otp, err := s.OTPs.First(ctx, datastore.Where(
		datastore.Eq("email", email),
		datastore.IsNull("consumed_at"),
	).OrderBy(datastore.Desc("created_at")))
	if err != nil {
		if datastore.IsNotFound(err) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid or expired code")
		}
		return err
	}
	if s.Now().After(otp.ExpiresAt) || otp.Attempts >= otpMaxAttempts {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid or expired code")
	}
	if bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(code)) != nil {
		if err := s.OTPs.Increment(ctx, otp.ID, "attempts", 1); err != nil {
			log.Printf("[WARN] otp attempts: %v", err)
		}
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid or expired code")
	}
	now := s.Now()
	_, err = s.OTPs.Update(ctx, otp.ID, map[string]any{"consumed_at": now})
	return err
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest, ip string) (string, session.Identity, error) {
	ok, err := s.signupAllowed(ctx, req.Email)
	if err != nil {
		return "", session.Identity{}, err
	}
	if !ok {
		return "", session.Identity{}, fiber.NewError(fiber.StatusForbidden, "Admin sign-up is not open for this email")
	}
	if err := s.consumeOTP(ctx, req.Email, req.OTP); err != nil {
		return "", session.Identity{}, err
	}
	u, err := s.createUser(ctx, req.Email, req.UserName, req.Password)
	if err != nil {
		return "", session.Identity{}, err
	}
	return s.Session.SignIn(*u, "register", ip)
}

func (s *AuthService) createUser(ctx context.Context, email, userName, password string) (*model.UserModel, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := model.UserModel{Email: email, UserName: userName, Password: hash, IsActive: true}
	if err := s.Users.Insert(ctx, &u); err != nil {
		if datastore.IsDuplicate(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "Email already registered")
		}
		return nil, err
	}
	return &u, nil
}

// CreateAdmin provisions an account directly (command line).
func (s *AuthService) CreateAdmin(ctx context.Context, in dto.CreateAdminInput) (*model.UserModel, error) {
	return s.createUser(ctx, strings.ToLower(strings.TrimSpace(in.Email)), strings.TrimSpace(in.UserName), in.Password)
}

/* ==========================
   LOGIN GOOGLE
========================== */

// LoginGoogle signs in an existing admin by Google account. Accounts are not
// created here; the e-mail must already belong to an admin.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken, ip string) (string, session.Identity, error) {
	if s.GoogleClientID == "" {
		return "", session.Identity{}, fiber.NewError(fiber.StatusServiceUnavailable, "Google sign-in is not configured")
	}
	profile, err := s.VerifyGoogle(idToken, s.GoogleClientID)
	if err != nil {
		return "", session.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid Google ID Token")
	}

	u, err := s.Users.First(ctx, datastore.Where(datastore.Eq("google_id", profile.Sub)))
	if datastore.IsNotFound(err) {
		// linking by e-mail needs Google to vouch for the address
		if !profile.EmailVerified {
			return "", session.Identity{}, fiber.NewError(fiber.StatusForbidden, "Google e-mail address is not verified")
		}
		u, err = s.findByEmail(ctx, strings.ToLower(profile.Email))
		if datastore.IsNotFound(err) {
			return "", session.Identity{}, fiber.NewError(fiber.StatusForbidden, "No admin account for this Google user")
		}
		if err == nil {
			u, err = s.Users.Update(ctx, u.ID, map[string]any{"google_id": profile.Sub})
		}
	}
	if err != nil {
		return "", session.Identity{}, err
	}
	if !u.IsActive {
		return "", session.Identity{}, fiber.NewError(fiber.StatusForbidden, "Your account has been disabled. Contact an administrator.")
	}
	return s.Session.SignIn(*u, "google", ip)
}

/* ==========================
   PROFILE
========================== */

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*model.UserModel, error) {
	return s.Users.Get(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := CheckPasswordHash(u.Password, req.CurrentPassword); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Current password is incorrect")
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.Users.Update(ctx, userID, map[string]any{"password": hash})
	return err
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.UserModel, error) {
	fields := map[string]any{}
	if req.UserName != nil {
		fields["user_name"] = strings.TrimSpace(*req.UserName)
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = strings.TrimSpace(*req.AvatarURL)
	}
	if len(fields) == 0 {
		return s.Users.Get(ctx, userID)
	}
	return s.Users.Update(ctx, userID, fields)
}
