package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"rickbags/internal/domain"
	"rickbags/internal/pricing"
	productrepo "rickbags/internal/repository/product"
	reviewrepo "rickbags/internal/repository/review"
)

type stubProducts struct {
	products   map[int64]domain.Product
	lastFilter productrepo.Filter
	listTotal  int64
	related    []domain.Product
}

func (s *stubProducts) List(_ context.Context, f productrepo.Filter) ([]domain.Product, int64, error) {
	s.lastFilter = f
	return nil, s.listTotal, nil
}

func (s *stubProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return &p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubProducts) Featured(_ context.Context, _ int) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubProducts) Related(_ context.Context, _, _ int64, _ int) ([]domain.Product, error) {
	return s.related, nil
}

func (s *stubProducts) SearchByName(_ context.Context, query string, _ int) ([]domain.Product, error) {
	return []domain.Product{{Name: query}}, nil
}

func (s *stubProducts) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = 100
	return &p, nil
}

func (s *stubProducts) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (s *stubProducts) Count(_ context.Context) (int64, error) {
	return int64(len(s.products)), nil
}

type stubCatalog struct {
	materials map[int64]domain.Material
	caseTypes map[int64]domain.CaseType
}

func (s *stubCatalog) Categories(_ context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (s *stubCatalog) RootCategories(_ context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (s *stubCatalog) Brands(_ context.Context) ([]domain.Brand, error) {
	return nil, nil
}

func (s *stubCatalog) Materials(_ context.Context, _ bool) ([]domain.Material, error) {
	return nil, nil
}

func (s *stubCatalog) GetMaterial(_ context.Context, id int64) (*domain.Material, error) {
	if m, ok := s.materials[id]; ok {
		return &m, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) CaseTypes(_ context.Context) ([]domain.CaseType, error) {
	return nil, nil
}

func (s *stubCatalog) GetCaseType(_ context.Context, id int64) (*domain.CaseType, error) {
	if ct, ok := s.caseTypes[id]; ok {
		return &ct, nil
	}
	return nil, domain.ErrNotFound
}

type stubReviews struct {
	reviews []domain.Review
	summary reviewrepo.RatingSummary
}

func (s *stubReviews) Create(_ context.Context, r domain.Review) (*domain.Review, error) {
	return &r, nil
}

func (s *stubReviews) ExistsForUser(_ context.Context, _, _ int64) (bool, error) {
	return false, nil
}

func (s *stubReviews) ListApprovedByProduct(_ context.Context, _ int64, _ int) ([]domain.Review, error) {
	return s.reviews, nil
}

func (s *stubReviews) Summary(_ context.Context, _ int64) (reviewrepo.RatingSummary, error) {
	return s.summary, nil
}

func (s *stubReviews) List(_ context.Context, _ *bool, _, _ int) ([]domain.Review, int64, error) {
	return nil, 0, nil
}

func (s *stubReviews) Approve(_ context.Context, _ int64) error {
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestListClampsPaginationAndForcesActive(t *testing.T) {
	products := &stubProducts{listTotal: 25}
	svc := New(products, &stubCatalog{}, &stubReviews{}, nil)

	listing, err := svc.List(context.Background(), productrepo.Filter{Page: -3, PerPage: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products.lastFilter.Page != 1 || products.lastFilter.PerPage != maxPerPage {
		t.Fatalf("expected clamped pagination, got page=%d per=%d", products.lastFilter.Page, products.lastFilter.PerPage)
	}
	if !products.lastFilter.ActiveOnly {
		t.Fatalf("listing must be restricted to active products")
	}
	if listing.TotalPages != 1 {
		t.Fatalf("25 items at %d per page: expected 1 page, got %d", maxPerPage, listing.TotalPages)
	}
}

func TestListTotalPages(t *testing.T) {
	products := &stubProducts{listTotal: 25}
	svc := New(products, &stubCatalog{}, &stubReviews{}, nil)

	listing, err := svc.List(context.Background(), productrepo.Filter{Page: 1, PerPage: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.TotalPages != 3 {
		t.Fatalf("25 items at 12 per page: expected 3 pages, got %d", listing.TotalPages)
	}
}

func TestDetail(t *testing.T) {
	products := &stubProducts{
		products: map[int64]domain.Product{
			7: {ID: 7, Name: "Amp Cover", Active: true, CategoryID: 2},
			8: {ID: 8, Name: "Hidden", Active: false},
		},
		related: []domain.Product{{ID: 9}, {ID: 10}},
	}
	reviews := &stubReviews{
		reviews: []domain.Review{{ID: 1, Rating: 5, Approved: true}},
		summary: reviewrepo.RatingSummary{Average: 4.5, Count: 12},
	}
	svc := New(products, &stubCatalog{}, reviews, nil)

	detail, err := svc.Detail(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Product.ID != 7 || len(detail.Reviews) != 1 || len(detail.Related) != 2 {
		t.Fatalf("unexpected detail payload: %+v", detail)
	}
	if detail.AvgRating != 4.5 || detail.ReviewCount != 12 {
		t.Fatalf("expected rating summary carried, got %f/%d", detail.AvgRating, detail.ReviewCount)
	}

	// Inactive products are invisible on the storefront.
	if _, err := svc.Detail(context.Background(), 8); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive product, got %v", err)
	}
}

func TestSearchShortQuery(t *testing.T) {
	svc := New(&stubProducts{}, &stubCatalog{}, &stubReviews{}, nil)

	results, err := svc.Search(context.Background(), " a ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results for short query, got %d", len(results))
	}
}

func TestQuoteCustomCase(t *testing.T) {
	catalog := &stubCatalog{
		materials: map[int64]domain.Material{
			1: {ID: 1, PricePerUnit: dec("25.00"), AvailableForCustom: true, Active: true},
			2: {ID: 2, PricePerUnit: dec("5.00"), AvailableForCustom: false, Active: true},
		},
		caseTypes: map[int64]domain.CaseType{
			1: {ID: 1, PriceMultiplier: dec("1.3"), Active: true},
		},
	}
	svc := New(&stubProducts{}, catalog, &stubReviews{}, nil)

	quote, err := svc.QuoteCustomCase(context.Background(), QuoteRequest{
		Width: dec("50"), Height: dec("30"), Depth: dec("20"),
		MaterialID: 1, CaseTypeID: 1, ExtraPockets: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.TotalPrice.Equal(dec("1005")) {
		t.Fatalf("expected 1005, got %s", quote.TotalPrice)
	}

	// Unknown references are a bad request, not a missing resource.
	_, err = svc.QuoteCustomCase(context.Background(), QuoteRequest{
		Width: dec("50"), Height: dec("30"), Depth: dec("20"), MaterialID: 99, CaseTypeID: 1,
	})
	if !errors.Is(err, pricing.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown material, got %v", err)
	}

	_, err = svc.QuoteCustomCase(context.Background(), QuoteRequest{
		Width: dec("50"), Height: dec("30"), Depth: dec("20"), MaterialID: 2, CaseTypeID: 1,
	})
	if !errors.Is(err, pricing.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-custom material, got %v", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := New(&stubProducts{}, &stubCatalog{}, &stubReviews{}, nil)

	cases := []domain.Product{
		{Price: dec("10"), CategoryID: 1},                         // no name
		{Name: "X", Price: dec("0"), CategoryID: 1},               // zero price
		{Name: "X", Price: dec("10")},                             // no category
		{Name: "X", Price: dec("10"), CategoryID: 1, StockQuantity: -1}, // negative stock
	}
	for i, p := range cases {
		if _, err := svc.CreateProduct(context.Background(), p); !errors.Is(err, ErrInvalidProduct) {
			t.Errorf("case %d: expected ErrInvalidProduct, got %v", i, err)
		}
	}

	created, err := svc.CreateProduct(context.Background(), domain.Product{Name: "X", Price: dec("10"), CategoryID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}
