package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepo(Seed()))
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := svc.Authenticate(ctx, "john_reviewer", "pass123")
		require.NoError(t, err)
		assert.Equal(t, "user1", user.ID)
		assert.Equal(t, RoleReviewer, user.Role)
		assert.Equal(t, "token_user1", token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, "john_reviewer", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, "nobody", "pass123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("whitespace username trimmed", func(t *testing.T) {
		user, _, err := svc.Authenticate(ctx, "  admin_user  ", "pass123")
		require.NoError(t, err)
		assert.Equal(t, "user2", user.ID)
	})
}

func TestListHidesPasswords(t *testing.T) {
	svc := NewService(NewMemoryRepo(Seed()))

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Seed order is stable.
	assert.Equal(t, "user1", all[0].ID)
	assert.Equal(t, "user2", all[1].ID)
	assert.Equal(t, "user3", all[2].ID)
}
