// Package catalog serves the storefront's product browsing surface:
// listing with filters, product detail, search and the custom case
// configurator options.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"rickbags/internal/domain"
	"rickbags/internal/pricing"
	catalogrepo "rickbags/internal/repository/catalog"
	productrepo "rickbags/internal/repository/product"
	"rickbags/internal/repository/review"
)

const (
	defaultPerPage = 12
	maxPerPage     = 48
	featuredLimit  = 8
	relatedLimit   = 4
	reviewLimit    = 50
	searchLimit    = 10
)

type Service struct {
	products productrepo.Repository
	catalog  catalogrepo.Repository
	reviews  review.Repository
	logger   *log.Logger
}

func New(products productrepo.Repository, catalog catalogrepo.Repository, reviews review.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{products: products, catalog: catalog, reviews: reviews, logger: logger}
}

// Listing is one page of filtered products.
type Listing struct {
	Products   []domain.Product `json:"products"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"perPage"`
	TotalPages int              `json:"totalPages"`
}

// List returns a page of active products matching the filter. Page and
// per-page are clamped to sane bounds; an unknown sort key falls back to
// name ascending inside the repository.
func (s *Service) List(ctx context.Context, f productrepo.Filter) (*Listing, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = defaultPerPage
	}
	if f.PerPage > maxPerPage {
		f.PerPage = maxPerPage
	}
	f.ActiveOnly = true

	items, total, err := s.products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	pages := int((total + int64(f.PerPage) - 1) / int64(f.PerPage))
	return &Listing{
		Products:   items,
		Total:      total,
		Page:       f.Page,
		PerPage:    f.PerPage,
		TotalPages: pages,
	}, nil
}

// Detail is a product page payload: the product, its approved reviews
// with the aggregate rating, and up to four related products from the
// same category.
type Detail struct {
	Product     domain.Product   `json:"product"`
	Reviews     []domain.Review  `json:"reviews"`
	AvgRating   float64          `json:"avgRating"`
	ReviewCount int64            `json:"reviewCount"`
	Related     []domain.Product `json:"related"`
}

func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, domain.ErrNotFound
	}

	reviews, err := s.reviews.ListApprovedByProduct(ctx, p.ID, reviewLimit)
	if err != nil {
		return nil, err
	}
	summary, err := s.reviews.Summary(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	related, err := s.products.Related(ctx, p.CategoryID, p.ID, relatedLimit)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Product:     *p,
		Reviews:     reviews,
		AvgRating:   summary.Average,
		ReviewCount: summary.Count,
		Related:     related,
	}, nil
}

// Featured returns the homepage product strip.
func (s *Service) Featured(ctx context.Context) ([]domain.Product, error) {
	return s.products.Featured(ctx, featuredLimit)
}

// Search matches active products by name for the typeahead endpoint.
// Queries shorter than two characters return an empty result.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []domain.Product{}, nil
	}
	return s.products.SearchByName(ctx, query, searchLimit)
}

// FilterOptions backs the listing sidebar.
type FilterOptions struct {
	Categories []domain.Category `json:"categories"`
	Brands     []domain.Brand    `json:"brands"`
	Materials  []domain.Material `json:"materials"`
}

func (s *Service) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, err
	}
	brands, err := s.catalog.Brands(ctx)
	if err != nil {
		return nil, err
	}
	materials, err := s.catalog.Materials(ctx, false)
	if err != nil {
		return nil, err
	}
	return &FilterOptions{Categories: categories, Brands: brands, Materials: materials}, nil
}

// RootCategories returns top-level categories for the navigation bar.
func (s *Service) RootCategories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.RootCategories(ctx)
}

// CustomCaseOptions lists the materials and case types offered by the
// custom case configurator. Only materials flagged for custom builds
// are included.
type CustomCaseOptions struct {
	Materials []domain.Material `json:"materials"`
	CaseTypes []domain.CaseType `json:"caseTypes"`
}

func (s *Service) CustomCaseOptions(ctx context.Context) (*CustomCaseOptions, error) {
	materials, err := s.catalog.Materials(ctx, true)
	if err != nil {
		return nil, err
	}
	caseTypes, err := s.catalog.CaseTypes(ctx)
	if err != nil {
		return nil, err
	}
	return &CustomCaseOptions{Materials: materials, CaseTypes: caseTypes}, nil
}

// ErrInvalidProduct covers admin product submissions that fail
// validation.
var ErrInvalidProduct = errors.New("invalid product")

func validateProduct(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidProduct)
	}
	if !p.Price.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	}
	if p.CategoryID < 1 {
		return fmt.Errorf("%w: category required", ErrInvalidProduct)
	}
	return nil
}

// CreateProduct adds a catalog product from the admin panel. A missing
// slug is derived from the name.
func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Slug) == "" {
		p.Slug = slugify(p.Name)
	}
	return s.products.Create(ctx, p)
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// UpdateProduct replaces a product's editable fields.
func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, p)
}

// ProductCount backs the admin dashboard.
func (s *Service) ProductCount(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}

// QuoteRequest carries the configurator's inputs. Dimensions are in
// centimeters.
type QuoteRequest struct {
	Width        decimal.Decimal `json:"width"`
	Height       decimal.Decimal `json:"height"`
	Depth        decimal.Decimal `json:"depth"`
	MaterialID   int64           `json:"materialId"`
	CaseTypeID   int64           `json:"caseTypeId"`
	ExtraPockets int             `json:"extraPockets"`
}

// QuoteCustomCase prices a custom case configuration. Unknown material
// or case type IDs surface as pricing.ErrInvalidInput so the handler
// reports them as a bad request rather than a missing resource.
func (s *Service) QuoteCustomCase(ctx context.Context, req QuoteRequest) (*pricing.Quote, error) {
	material, err := s.catalog.GetMaterial(ctx, req.MaterialID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, pricing.ErrInvalidInput
		}
		return nil, err
	}
	caseType, err := s.catalog.GetCaseType(ctx, req.CaseTypeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, pricing.ErrInvalidInput
		}
		return nil, err
	}
	if !material.AvailableForCustom || !material.Active || !caseType.Active {
		return nil, pricing.ErrInvalidInput
	}

	quote, err := pricing.Calculate(req.Width, req.Height, req.Depth, *material, *caseType, req.ExtraPockets)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}
