package newsletter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rickbags/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Subscribe(ctx context.Context, email string) (*domain.NewsletterSubscriber, error) {
	const q = `
INSERT INTO newsletter_subscribers (email)
VALUES ($1)
RETURNING id, email, active, created_at
`
	var sub domain.NewsletterSubscriber
	if err := r.pool.QueryRow(ctx, q, email).Scan(&sub.ID, &sub.Email, &sub.Active, &sub.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &sub, nil
}
