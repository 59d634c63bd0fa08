package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lukirizki/articlehub/internal/config"
	"github.com/lukirizki/articlehub/internal/domain/user"
	"github.com/lukirizki/articlehub/internal/security"
)

type UserSeeder interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Insert(ctx context.Context, u user.User) error
}

// EnsureSeedUser creates the configured user once. It bypasses request
// validation so operators can pick any password.
func EnsureSeedUser(ctx context.Context, users UserSeeder, cfg config.Config) error {
	if cfg.SeedUserEmail == "" || cfg.SeedUserPassword == "" {
		return nil
	}

	_, err := users.GetByEmail(ctx, cfg.SeedUserEmail)

	if err == nil {
		return nil
	}

	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.SeedUserPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	return users.Insert(ctx, user.User{
		ID:           uuid.NewString(),
		Fullname:     cfg.SeedUserFullname,
		Email:        cfg.SeedUserEmail,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
