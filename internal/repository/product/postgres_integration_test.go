package product

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"rickbags/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("ping db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(ctx, `TRUNCATE order_items, orders, reviews, wishlist, product_materials,
		products, brands, categories, users RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func TestPostgresListFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	var catID, brandID int64
	if err := pool.QueryRow(ctx, `INSERT INTO categories (name, slug) VALUES ('Covers', 'covers') RETURNING id`).Scan(&catID); err != nil {
		t.Fatalf("insert category: %v", err)
	}
	if err := pool.QueryRow(ctx, `INSERT INTO brands (name, slug) VALUES ('Marshall', 'marshall') RETURNING id`).Scan(&brandID); err != nil {
		t.Fatalf("insert brand: %v", err)
	}

	repo := NewPostgres(pool, nil)
	seed := []struct {
		name  string
		slug  string
		price string
		brand *int64
	}{
		{"Cheap Cover", "cheap-cover", "49.99", nil},
		{"Mid Cover", "mid-cover", "89.99", &brandID},
		{"Expensive Cover", "expensive-cover", "199.99", &brandID},
	}
	for _, p := range seed {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (name, slug, price, category_id, brand_id, active) VALUES ($1, $2, $3, $4, $5, TRUE)`,
			p.name, p.slug, p.price, catID, p.brand)
		if err != nil {
			t.Fatalf("insert product %s: %v", p.slug, err)
		}
	}

	// Price band.
	min := decimal.RequireFromString("60")
	max := decimal.RequireFromString("100")
	items, total, err := repo.List(ctx, Filter{MinPrice: &min, MaxPrice: &max, ActiveOnly: true, Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("list by price: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Slug != "mid-cover" {
		t.Fatalf("expected only mid-cover in band, got total=%d items=%+v", total, items)
	}

	// Brand filter.
	_, total, err = repo.List(ctx, Filter{Brand: "marshall", ActiveOnly: true, Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("list by brand: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 marshall products, got %d", total)
	}

	// Price descending sort.
	items, _, err = repo.List(ctx, Filter{Sort: SortPriceDesc, ActiveOnly: true, Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("list sorted: %v", err)
	}
	if len(items) != 3 || items[0].Slug != "expensive-cover" || items[2].Slug != "cheap-cover" {
		t.Fatalf("unexpected sort order: %+v", items)
	}

	// Pagination shares the filter between count and page.
	items, total, err = repo.List(ctx, Filter{ActiveOnly: true, Sort: SortPriceAsc, Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if total != 3 || len(items) != 1 || items[0].Slug != "expensive-cover" {
		t.Fatalf("expected last item on page 2, got total=%d items=%+v", total, items)
	}
}

func TestPostgresSearchByName(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	var catID int64
	if err := pool.QueryRow(ctx, `INSERT INTO categories (name, slug) VALUES ('Covers', 'covers') RETURNING id`).Scan(&catID); err != nil {
		t.Fatalf("insert category: %v", err)
	}
	_, err := pool.Exec(ctx,
		`INSERT INTO products (name, slug, price, category_id, active) VALUES ('Marshall JCM800 Cover', 'jcm800', 89.99, $1, TRUE)`, catID)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}

	repo := NewPostgres(pool, nil)
	results, err := repo.SearchByName(ctx, "jcm", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected case-insensitive match, got %d results", len(results))
	}
}
