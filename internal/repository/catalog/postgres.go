package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rickbags/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const categoryColumns = `id, name, slug, COALESCE(description, ''), COALESCE(image, ''), parent_id, sort_order, active, created_at`

func (r *postgresRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories ORDER BY sort_order, name`
	return r.queryCategories(ctx, q)
}

func (r *postgresRepo) RootCategories(ctx context.Context) ([]domain.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories WHERE parent_id IS NULL ORDER BY sort_order, name`
	return r.queryCategories(ctx, q)
}

func (r *postgresRepo) queryCategories(ctx context.Context, q string) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.ParentID, &c.SortOrder, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *postgresRepo) Brands(ctx context.Context) ([]domain.Brand, error) {
	const q = `
SELECT id, name, slug, COALESCE(description, ''), COALESCE(logo, ''), COALESCE(website, ''), active, created_at
FROM brands
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.Description, &b.Logo, &b.Website, &b.Active, &b.CreatedAt); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

const materialColumns = `id, name, COALESCE(description, ''), price_per_unit, available_for_custom, properties, active, created_at`

func (r *postgresRepo) Materials(ctx context.Context, customOnly bool) ([]domain.Material, error) {
	q := `SELECT ` + materialColumns + ` FROM materials`
	if customOnly {
		q += ` WHERE available_for_custom AND active`
	}
	q += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []domain.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, *m)
	}
	return materials, rows.Err()
}

func (r *postgresRepo) GetMaterial(ctx context.Context, id int64) (*domain.Material, error) {
	const q = `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := scanMaterial(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

const caseTypeColumns = `id, name, COALESCE(description, ''), price_multiplier, active, created_at`

func (r *postgresRepo) CaseTypes(ctx context.Context) ([]domain.CaseType, error) {
	const q = `SELECT ` + caseTypeColumns + ` FROM case_types ORDER BY name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.CaseType
	for rows.Next() {
		var ct domain.CaseType
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.Description, &ct.PriceMultiplier, &ct.Active, &ct.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, ct)
	}
	return types, rows.Err()
}

func (r *postgresRepo) GetCaseType(ctx context.Context, id int64) (*domain.CaseType, error) {
	const q = `SELECT ` + caseTypeColumns + ` FROM case_types WHERE id = $1`
	var ct domain.CaseType
	err := r.pool.QueryRow(ctx, q, id).Scan(&ct.ID, &ct.Name, &ct.Description, &ct.PriceMultiplier, &ct.Active, &ct.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ct, nil
}

func scanMaterial(row pgx.Row) (*domain.Material, error) {
	var m domain.Material
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.PricePerUnit, &m.AvailableForCustom, &m.Properties, &m.Active, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
