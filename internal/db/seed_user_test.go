package db

import (
	"context"
	"testing"

	"github.com/lukirizki/articlehub/internal/config"
	"github.com/lukirizki/articlehub/internal/repo/memory"
	"github.com/lukirizki/articlehub/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSeedUser(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsersRepo()

	cfg := config.Config{
		SeedUserEmail:    "lukirizki@gmail.com",
		SeedUserPassword: "password",
		SeedUserFullname: "Luki Rizki",
	}

	require.NoError(t, EnsureSeedUser(ctx, users, cfg))

	u, err := users.GetByEmail(ctx, cfg.SeedUserEmail)
	require.NoError(t, err)
	assert.Equal(t, "Luki Rizki", u.Fullname)
	assert.True(t, security.ComparePassword("password", u.PasswordHash))

	// second run is a no-op
	require.NoError(t, EnsureSeedUser(ctx, users, cfg))
	again, err := users.GetByEmail(ctx, cfg.SeedUserEmail)
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
}

func TestEnsureSeedUser_DisabledWithoutCredentials(t *testing.T) {
	users := memory.NewUsersRepo()

	require.NoError(t, EnsureSeedUser(context.Background(), users, config.Config{SeedUserEmail: "x@y.z"}))

	_, err := users.GetByEmail(context.Background(), "x@y.z")
	assert.Error(t, err)
}
