package review

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rickbags/internal/domain"
)

const reviewColumns = `id, product_id, user_id, rating, COALESCE(title, ''), COALESCE(comment, ''), approved, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, rev domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (product_id, user_id, rating, title, comment, approved)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), FALSE)
RETURNING id, approved, created_at, updated_at
`
	err := r.pool.QueryRow(ctx, q, rev.ProductID, rev.UserID, rev.Rating, rev.Title, rev.Comment).
		Scan(&rev.ID, &rev.Approved, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *postgresRepo) ExistsForUser(ctx context.Context, productID, userID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM reviews WHERE product_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, productID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) ListApprovedByProduct(ctx context.Context, productID int64, limit int) ([]domain.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE product_id = $1 AND approved ORDER BY created_at DESC LIMIT $2`
	return r.queryMany(ctx, q, productID, limit)
}

func (r *postgresRepo) Summary(ctx context.Context, productID int64) (RatingSummary, error) {
	const q = `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE product_id = $1 AND approved`
	var s RatingSummary
	if err := r.pool.QueryRow(ctx, q, productID).Scan(&s.Average, &s.Count); err != nil {
		return RatingSummary{}, err
	}
	return s, nil
}

func (r *postgresRepo) List(ctx context.Context, approved *bool, page, perPage int) ([]domain.Review, int64, error) {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * perPage

	var total int64
	var reviews []domain.Review
	var err error
	if approved != nil {
		if err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE approved = $1`, *approved).Scan(&total); err != nil {
			return nil, 0, err
		}
		reviews, err = r.queryMany(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE approved = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, *approved, perPage, offset)
	} else {
		if err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&total); err != nil {
			return nil, 0, err
		}
		reviews, err = r.queryMany(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC LIMIT $1 OFFSET $2`, perPage, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *postgresRepo) Approve(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE reviews SET approved = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) queryMany(ctx context.Context, q string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rev)
	}
	return reviews, rows.Err()
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rev domain.Review
	if err := row.Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.Rating, &rev.Title, &rev.Comment, &rev.Approved, &rev.CreatedAt, &rev.UpdatedAt); err != nil {
		return nil, err
	}
	return &rev, nil
}
