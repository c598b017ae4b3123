package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/users/auth/model"
	"suryaghar_backend/internals/features/users/auth/service"
)

func TestCreateAdmin(t *testing.T) {
	users := datastore.NewMemoryTable[model.UserModel]("email")

	u, err := CreateAdmin(context.Background(), users, AdminSeed{
		Email:    "  Admin@Example.com ",
		UserName: "site admin",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "s3cretpass", u.Password)
	assert.NoError(t, service.CheckPasswordHash(u.Password, "s3cretpass"))

	_, err = CreateAdmin(context.Background(), users, AdminSeed{
		Email:    "admin@example.com",
		UserName: "another",
		Password: "s3cretpass",
	})
	assert.ErrorIs(t, err, ErrAdminExists)
	assert.Len(t, users.Rows(), 1)
}

func TestCreateAdmin_Rejects(t *testing.T) {
	users := datastore.NewMemoryTable[model.UserModel]("email")
	cases := []AdminSeed{
		{Email: "not-an-email", UserName: "admin", Password: "s3cretpass"},
		{Email: "a@example.com", UserName: "ab", Password: "s3cretpass"},
		{Email: "a@example.com", UserName: "admin", Password: "short"},
	}
	for _, c := range cases {
		_, err := CreateAdmin(context.Background(), users, c)
		assert.Error(t, err)
	}
	assert.Empty(t, users.Rows())
}
