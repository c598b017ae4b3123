package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/users/auth/model"
	"suryaghar_backend/internals/features/users/auth/service"
)

var ErrAdminExists = errors.New("an account with this email already exists")

type AdminSeed struct {
	Email    string
	UserName string
	Password string
}

func (a AdminSeed) validate() error {
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return fmt.Errorf("invalid email %q", a.Email)
	}
	if len(strings.TrimSpace(a.UserName)) < 3 {
		return errors.New("username must be at least 3 characters")
	}
	if len(a.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// CreateAdmin inserts one active back-office account.
func CreateAdmin(ctx context.Context, users datastore.Table[model.UserModel], data AdminSeed) (*model.UserModel, error) {
	data.Email = strings.ToLower(strings.TrimSpace(data.Email))
	data.UserName = strings.TrimSpace(data.UserName)
	if err := data.validate(); err != nil {
		return nil, err
	}

	if _, err := users.First(ctx, datastore.Where(datastore.Eq("email", data.Email))); err == nil {
		log.Printf("ℹ️ admin '%s' already exists, skipped.", data.Email)
		return nil, ErrAdminExists
	} else if !datastore.IsNotFound(err) {
		return nil, err
	}

	hashedPassword, err := service.HashPassword(data.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := model.UserModel{
		ID:       uuid.New(),
		Email:    data.Email,
		UserName: data.UserName,
		Password: hashedPassword,
		IsActive: true,
	}
	if err := users.Insert(ctx, &newUser); err != nil {
		if datastore.IsDuplicate(err) {
			return nil, ErrAdminExists
		}
		return nil, err
	}
	log.Printf("✅ admin '%s' created", newUser.Email)
	return &newUser, nil
}
