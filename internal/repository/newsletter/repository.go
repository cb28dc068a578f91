package newsletter

import (
	"context"

	"rickbags/internal/domain"
)

type Repository interface {
	// Subscribe returns domain.ErrAlreadyExists for a duplicate email.
	Subscribe(ctx context.Context, email string) (*domain.NewsletterSubscriber, error)
}
