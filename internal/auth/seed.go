package auth

import (
	"context"
	"fmt"
	"log/slog"
)

// Seed admin identity. The password is a fixed, well-known temporary
// credential: the admin is expected to log in once and change it
// immediately. Seeding is refused as soon as any user exists, so the
// window where this password works is the first boot only.
const (
	SeedAdminEmail    = "admin" + AllowedEmailDomain
	SeedAdminName     = "System Administrator"
	SeedAdminPassword = "ChangeMe123!"
)

// SeedAdmin creates the initial admin account if and only if no users
// exist. It returns the created user, or ErrUsersExist when the store
// already holds any account (the idempotent re-seed guard).
func SeedAdmin(ctx context.Context, repo UserRepository, logger *slog.Logger) (*User, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking user count: %w", err)
	}

	if count > 0 {
		return nil, ErrUsersExist
	}

	hash, err := HashPassword(SeedAdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing seed password: %w", err)
	}

	admin := &User{
		Email:        SeedAdminEmail,
		Name:         SeedAdminName,
		PasswordHash: hash,
		Role:         RoleAdmin,
		IsActive:     true,
	}

	if err := repo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("creating seed admin: %w", err)
	}

	logger.Warn("seed admin account created",
		"email", admin.Email,
		"action_required", "log in and change the temporary password immediately",
	)

	return admin, nil
}
