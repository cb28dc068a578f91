package httpserver

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"rickbags/internal/cart"
	"rickbags/internal/config"
	"rickbags/internal/domain"
	orderrepo "rickbags/internal/repository/order"
	productrepo "rickbags/internal/repository/product"
	reviewrepo "rickbags/internal/repository/review"
	"rickbags/internal/session"
	authsvc "rickbags/internal/service/auth"
	cartsvc "rickbags/internal/service/cart"
	catalogsvc "rickbags/internal/service/catalog"
	checkoutsvc "rickbags/internal/service/checkout"
	ordersvc "rickbags/internal/service/order"
	reviewsvc "rickbags/internal/service/review"
)

// memSessions keeps session blobs in a map so handler tests run without
// Redis.
type memSessions struct {
	mu sync.Mutex
	m  map[string]*session.Data
}

func newMemSessions() *memSessions {
	return &memSessions{m: map[string]*session.Data{}}
}

func (s *memSessions) Load(_ context.Context, sid string) (*session.Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data, ok := s.m[sid]; ok {
		return data, nil
	}
	return &session.Data{Cart: cart.New()}, nil
}

func (s *memSessions) Save(_ context.Context, sid string, data *session.Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sid] = data
	return nil
}

func (s *memSessions) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sid)
	return nil
}

type stubUsers struct {
	byID    map[int64]*domain.User
	byEmail map[string]*domain.User
}

func (s *stubUsers) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if _, ok := s.byEmail[u.Email]; ok {
		return nil, domain.ErrAlreadyExists
	}
	u.ID = int64(len(s.byID) + 1)
	u.IsActive = true
	s.byID[u.ID] = &u
	s.byEmail[u.Email] = &u
	return &u, nil
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubUsers) GetByResetToken(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (s *stubUsers) UpdateProfile(_ context.Context, _ int64, _, _, _ string) error {
	return nil
}

func (s *stubUsers) SetResetToken(_ context.Context, _ int64, _ string, _ time.Time) error {
	return nil
}

func (s *stubUsers) UpdatePassword(_ context.Context, _ int64, _ string) error {
	return nil
}

func (s *stubUsers) List(_ context.Context, _, _ int) ([]domain.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUsers) Count(_ context.Context) (int64, error) {
	return int64(len(s.byID)), nil
}

type stubProducts struct {
	products map[int64]domain.Product
}

func (s *stubProducts) List(_ context.Context, _ productrepo.Filter) ([]domain.Product, int64, error) {
	var out []domain.Product
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
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
	return nil, nil
}

func (s *stubProducts) SearchByName(_ context.Context, _ string, _ int) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubProducts) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = int64(len(s.products) + 1)
	s.products[p.ID] = p
	return &p, nil
}

func (s *stubProducts) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	if _, ok := s.products[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	s.products[p.ID] = p
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

type stubOrders struct {
	orders map[int64]*domain.Order
}

func (s *stubOrders) CreateWithItems(_ context.Context, o domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	o.ID = int64(len(s.orders) + 1)
	o.Items = items
	s.orders[o.ID] = &o
	return &o, nil
}

func (s *stubOrders) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	if o, ok := s.orders[id]; ok {
		return o, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrders) GetForUser(_ context.Context, id, userID int64) (*domain.Order, error) {
	if o, ok := s.orders[id]; ok && o.UserID == userID {
		return o, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrders) ListByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrders) List(_ context.Context, _ string, _, _ int) ([]domain.Order, int64, error) {
	return nil, 0, nil
}

func (s *stubOrders) Recent(_ context.Context, _ int) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id int64, upd orderrepo.StatusUpdate) error {
	if o, ok := s.orders[id]; ok {
		o.Status = upd.Status
		return nil
	}
	return domain.ErrNotFound
}

func (s *stubOrders) Metrics(_ context.Context) (orderrepo.Metrics, error) {
	return orderrepo.Metrics{TotalOrders: int64(len(s.orders))}, nil
}

type stubReviews struct{}

func (s *stubReviews) Create(_ context.Context, r domain.Review) (*domain.Review, error) {
	r.ID = 1
	return &r, nil
}

func (s *stubReviews) ExistsForUser(_ context.Context, _, _ int64) (bool, error) {
	return false, nil
}

func (s *stubReviews) ListApprovedByProduct(_ context.Context, _ int64, _ int) ([]domain.Review, error) {
	return nil, nil
}

func (s *stubReviews) Summary(_ context.Context, _ int64) (reviewrepo.RatingSummary, error) {
	return reviewrepo.RatingSummary{}, nil
}

func (s *stubReviews) List(_ context.Context, _ *bool, _, _ int) ([]domain.Review, int64, error) {
	return nil, 0, nil
}

func (s *stubReviews) Approve(_ context.Context, _ int64) error {
	return nil
}

type stubWishlist struct{}

func (s *stubWishlist) Add(_ context.Context, userID, productID int64) (*domain.WishlistItem, error) {
	return &domain.WishlistItem{UserID: userID, ProductID: productID}, nil
}

func (s *stubWishlist) Remove(_ context.Context, _, _ int64) error {
	return nil
}

func (s *stubWishlist) ListProducts(_ context.Context, _ int64) ([]domain.Product, error) {
	return nil, nil
}

type stubNewsletter struct {
	emails map[string]bool
}

func (s *stubNewsletter) Subscribe(_ context.Context, email string) (*domain.NewsletterSubscriber, error) {
	if s.emails[email] {
		return nil, domain.ErrAlreadyExists
	}
	s.emails[email] = true
	return &domain.NewsletterSubscriber{Email: email}, nil
}

type stubSettings struct{}

func (s *stubSettings) All(_ context.Context) ([]domain.SiteSetting, error) {
	return nil, nil
}

func (s *stubSettings) Set(_ context.Context, _, _ string) error {
	return nil
}

type dropMailer struct{}

func (dropMailer) Send(_ context.Context, _ []string, _, _ string) error {
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustHash(password string) string {
	h, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(h)
}

// testRouter builds the full route table on stub storage.
func testRouter() (*gin.Engine, *memSessions, *stubUsers) {
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)

	sessions := newMemSessions()
	admin := &domain.User{ID: 1, Email: "admin@rickbags.com", PasswordHash: mustHash("AdminPass1"), IsAdmin: true, IsActive: true}
	customer := &domain.User{ID: 2, Email: "rick@example.com", PasswordHash: mustHash("Password1"), IsActive: true}
	users := &stubUsers{
		byID:    map[int64]*domain.User{1: admin, 2: customer},
		byEmail: map[string]*domain.User{admin.Email: admin, customer.Email: customer},
	}

	products := &stubProducts{products: map[int64]domain.Product{
		3: {ID: 3, Name: "Pedalboard Bag", Price: dec("149.99"), Active: true, CategoryID: 1},
	}}
	catalog := &stubCatalog{
		materials: map[int64]domain.Material{
			1: {ID: 1, Name: "Ballistic Nylon", PricePerUnit: dec("25.00"), AvailableForCustom: true, Active: true},
		},
		caseTypes: map[int64]domain.CaseType{
			1: {ID: 1, Name: "Hard Case", PriceMultiplier: dec("1.3"), Active: true},
		},
	}
	orders := &stubOrders{orders: map[int64]*domain.Order{}}
	reviews := &stubReviews{}

	deps := Deps{
		Sessions:   sessions,
		Users:      users,
		Wishlist:   &stubWishlist{},
		Newsletter: &stubNewsletter{emails: map[string]bool{}},
		Settings:   &stubSettings{},
		AuthSvc:    authsvc.New(users, dropMailer{}, logger),
		CatalogSvc: catalogsvc.New(products, catalog, reviews, logger),
		CartSvc:    cartsvc.New(products, catalog),
		CheckoutS:  checkoutsvc.New(orders, logger),
		OrderSvc:   ordersvc.New(orders, logger),
		ReviewSvc:  reviewsvc.New(reviews, products),
		Mailer:     dropMailer{},
		Cfg:        config.Config{SessionTTL: time.Hour},
	}
	router, err := buildRouter(logger, nil, nil, deps)
	if err != nil {
		panic(err)
	}
	return router, sessions, users
}
