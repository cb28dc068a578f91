package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rickbags/internal/domain"
)

const productColumns = `p.id, p.name, p.slug, COALESCE(p.description, ''), COALESCE(p.short_description, ''), p.price, p.compare_price, COALESCE(p.sku, ''), p.stock_quantity, p.weight, p.dimensions, p.compatibility, p.main_image, p.images, p.features, p.specifications, p.active, p.featured, p.category_id, p.brand_id, p.created_at, p.updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// List applies catalog filters and pagination in SQL. The count query
// shares the WHERE clause so page totals always match the result set.
func (r *postgresRepo) List(ctx context.Context, f Filter) ([]domain.Product, int64, error) {
	where, args := buildWhere(f)

	countQ := `SELECT COUNT(*) FROM products p` + joinClause(f) + where
	var total int64
	if err := r.pool.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		r.logger.Printf("product repo: count error=%v", err)
		return nil, 0, err
	}

	perPage := f.PerPage
	if perPage <= 0 {
		perPage = 12
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, perPage, (page-1)*perPage)
	listQ := fmt.Sprintf(`SELECT %s FROM products p%s%s%s LIMIT $%d OFFSET $%d`,
		productColumns, joinClause(f), where, orderClause(f.Sort), len(args)-1, len(args))

	products, err := r.queryMany(ctx, listQ, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, 0, err
	}
	return products, total, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products p WHERE p.featured AND p.active ORDER BY p.created_at DESC LIMIT $1`
	return r.queryMany(ctx, q, limit)
}

func (r *postgresRepo) Related(ctx context.Context, categoryID, excludeID int64, limit int) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products p WHERE p.category_id = $1 AND p.id <> $2 AND p.active LIMIT $3`
	return r.queryMany(ctx, q, categoryID, excludeID, limit)
}

func (r *postgresRepo) SearchByName(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products p WHERE p.name ILIKE '%' || $1 || '%' AND p.active ORDER BY p.name ASC LIMIT $2`
	return r.queryMany(ctx, q, query, limit)
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, slug, description, short_description, price, compare_price, sku, stock_quantity, weight, dimensions, compatibility, main_image, images, features, specifications, active, featured, category_id, brand_id)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, NULLIF($7, ''), $8, $9, $10, $11, NULLIF($12, ''), $13, $14, $15, $16, $17, $18, $19)
RETURNING id, created_at, updated_at
`
	err := r.pool.QueryRow(ctx, q,
		p.Name, p.Slug, p.Description, p.ShortDescription, p.Price, p.ComparePrice,
		p.SKU, p.StockQuantity, p.Weight, p.Dimensions, p.Compatibility, p.MainImage, p.Images,
		p.Features, p.Specifications, p.Active, p.Featured, p.CategoryID, p.BrandID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("product repo: create slug=%s error=%v", p.Slug, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $1, description = NULLIF($2, ''), price = $3, category_id = $4, brand_id = $5,
    sku = NULLIF($6, ''), stock_quantity = $7, active = $8, featured = $9, updated_at = now()
WHERE id = $10
RETURNING updated_at
`
	err := r.pool.QueryRow(ctx, q,
		p.Name, p.Description, p.Price, p.CategoryID, p.BrandID,
		p.SKU, p.StockQuantity, p.Active, p.Featured, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%d error=%v", p.ID, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) queryMany(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func buildWhere(f Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ActiveOnly {
		conds = append(conds, "p.active")
	}
	if f.CategoryID != nil {
		conds = append(conds, "p.category_id = "+arg(*f.CategoryID))
	}
	if f.Brand != "" {
		conds = append(conds, "b.slug = "+arg(f.Brand))
	}
	if f.Material != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM product_materials pm
			JOIN materials m ON m.id = pm.material_id
			WHERE pm.product_id = p.id AND m.name = `+arg(f.Material)+`)`)
	}
	if f.MinPrice != nil {
		conds = append(conds, "p.price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		conds = append(conds, "p.price <= "+arg(*f.MaxPrice))
	}
	if f.Query != "" {
		ph := arg(f.Query)
		conds = append(conds, "(p.name ILIKE '%' || "+ph+" || '%' OR p.description ILIKE '%' || "+ph+" || '%')")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func joinClause(f Filter) string {
	if f.Brand != "" {
		return " JOIN brands b ON b.id = p.brand_id"
	}
	return ""
}

func orderClause(sort string) string {
	switch sort {
	case SortPriceAsc:
		return " ORDER BY p.price ASC"
	case SortPriceDesc:
		return " ORDER BY p.price DESC"
	case SortNewest:
		return " ORDER BY p.created_at DESC"
	default:
		return " ORDER BY p.name ASC"
	}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var mainImage *string
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.ShortDescription,
		&p.Price,
		&p.ComparePrice,
		&p.SKU,
		&p.StockQuantity,
		&p.Weight,
		&p.Dimensions,
		&p.Compatibility,
		&mainImage,
		&p.Images,
		&p.Features,
		&p.Specifications,
		&p.Active,
		&p.Featured,
		&p.CategoryID,
		&p.BrandID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if mainImage != nil {
		p.MainImage = *mainImage
	}
	return &p, nil
}
