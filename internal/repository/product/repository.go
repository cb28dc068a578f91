package product

import (
	"context"

	"github.com/shopspring/decimal"

	"rickbags/internal/domain"
)

// Sort keys accepted by List. Anything else falls back to name ascending.
const (
	SortName      = "name"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)

// Filter narrows and orders a catalog listing. Zero values mean "no
// constraint".
type Filter struct {
	CategoryID *int64
	Brand      string
	Material   string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Query      string
	ActiveOnly bool
	Sort       string
	Page       int
	PerPage    int
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]domain.Product, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Featured(ctx context.Context, limit int) ([]domain.Product, error)
	Related(ctx context.Context, categoryID, excludeID int64, limit int) ([]domain.Product, error)
	SearchByName(ctx context.Context, query string, limit int) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Count(ctx context.Context) (int64, error)
}
