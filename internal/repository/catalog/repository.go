package catalog

import (
	"context"

	"rickbags/internal/domain"
)

// Repository reads the reference tables the storefront filters on.
type Repository interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	RootCategories(ctx context.Context) ([]domain.Category, error)
	Brands(ctx context.Context) ([]domain.Brand, error)
	Materials(ctx context.Context, customOnly bool) ([]domain.Material, error)
	GetMaterial(ctx context.Context, id int64) (*domain.Material, error)
	CaseTypes(ctx context.Context) ([]domain.CaseType, error)
	GetCaseType(ctx context.Context, id int64) (*domain.CaseType, error)
}
