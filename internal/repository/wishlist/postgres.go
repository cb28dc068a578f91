package wishlist

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

func (r *postgresRepo) Add(ctx context.Context, userID, productID int64) (*domain.WishlistItem, error) {
	const q = `
INSERT INTO wishlist (user_id, product_id)
VALUES ($1, $2)
RETURNING id, created_at
`
	item := domain.WishlistItem{UserID: userID, ProductID: productID}
	if err := r.pool.QueryRow(ctx, q, userID, productID).Scan(&item.ID, &item.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID, productID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM wishlist WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListProducts(ctx context.Context, userID int64) ([]domain.Product, error) {
	const q = `
SELECT p.id, p.name, p.slug, p.price, COALESCE(p.main_image, ''), p.stock_quantity, p.active
FROM wishlist w
JOIN products p ON p.id = w.product_id
WHERE w.user_id = $1
ORDER BY w.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.MainImage, &p.StockQuantity, &p.Active); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
