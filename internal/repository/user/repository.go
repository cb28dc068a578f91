package user

import (
	"context"
	"time"

	"rickbags/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, phone string) error
	SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error
	// UpdatePassword stores a new hash and clears any outstanding reset
	// token in the same statement.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	List(ctx context.Context, page, perPage int) ([]domain.User, int64, error)
	Count(ctx context.Context) (int64, error)
}
