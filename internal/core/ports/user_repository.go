package ports

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for accounts.
type UserRepository interface {
	// Add stores a new account. A taken email is reported as errs.ConflictError with ParamName "email".
	Add(ctx context.Context, aggregate *user.User) error

	// GetByEmail returns errs.ObjectNotFoundError when no account uses email.
	GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error)
}
