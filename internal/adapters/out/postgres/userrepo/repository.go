package userrepo

import (
	"context"
	"errors"

	"cafeteria/internal/adapters/out/postgres/pgerrs"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"

	"gorm.io/gorm"
)

const emailConstraint = "users_email_key"

var _ ports.UserRepository = (*GormUserRepository)(nil)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add stores the account. The email unique index turns a second registration
// into errs.ConflictError.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if pgerrs.IsUniqueViolation(err, emailConstraint) {
		return errs.NewConflictErrorWithCause("email", dto.Email, err)
	}
	return err
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	err := r.db.WithContext(ctx).First(&dto, "email = ?", email.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("user", email.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}
