package user_test

import (
	"testing"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Run("should default to user", func(t *testing.T) {
		role, err := user.ParseRole("")

		require.NoError(t, err)
		assert.Equal(t, user.RoleUser, role)
	})

	t.Run("should accept known roles in any case", func(t *testing.T) {
		role, err := user.ParseRole(" Admin ")

		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, role)
	})

	t.Run("should reject unknown roles", func(t *testing.T) {
		_, err := user.ParseRole("superuser")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewUser(t *testing.T) {
	email, _ := kernel.NewEmail("a@x.com")

	t.Run("should create a user", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), email, "$2a$10$hash", user.RoleAdmin, time.Now())

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.Equal(t, "a@x.com", u.Email().String())
		assert.Equal(t, user.RoleAdmin, u.Role())
		assert.Equal(t, "$2a$10$hash", u.PasswordHash())
	})

	t.Run("should join validation failures", func(t *testing.T) {
		u, err := user.NewUser(kernel.UUID{}, kernel.Email{}, "", user.Role("root"), time.Now())

		require.Error(t, err)
		assert.Nil(t, u)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "password hash")
		assert.Contains(t, err.Error(), "role")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var u *user.User

		assert.Equal(t, user.ErrUserIsNotConstructed, u.Validate())
	})
}
