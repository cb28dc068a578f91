package checkout

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rickbags/internal/cart"
	"rickbags/internal/domain"
	orderrepo "rickbags/internal/repository/order"
)

type stubOrders struct {
	collisions int
	created    []domain.Order
	items      []domain.OrderItem
	seen       []string
}

func (s *stubOrders) CreateWithItems(_ context.Context, o domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	s.seen = append(s.seen, o.OrderNumber)
	if s.collisions > 0 {
		s.collisions--
		return nil, domain.ErrAlreadyExists
	}
	o.ID = int64(len(s.created) + 1)
	s.created = append(s.created, o)
	s.items = items
	return &o, nil
}

func (s *stubOrders) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

func (s *stubOrders) GetForUser(_ context.Context, _, _ int64) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

func (s *stubOrders) ListByUser(_ context.Context, _ int64) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrders) List(_ context.Context, _ string, _, _ int) ([]domain.Order, int64, error) {
	return nil, 0, nil
}

func (s *stubOrders) Recent(_ context.Context, _ int) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, _ int64, _ orderrepo.StatusUpdate) error {
	return nil
}

func (s *stubOrders) Metrics(_ context.Context) (orderrepo.Metrics, error) {
	return orderrepo.Metrics{}, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCart() cart.Cart {
	pid := int64(3)
	c := cart.New()
	c.Add("3", cart.Line{ProductID: &pid, Name: "Pedalboard Bag", Price: dec("149.99"), Quantity: 2})
	c.Add("custom_abc", cart.Line{Name: "Custom Hard Case", Price: dec("1005.00"), Quantity: 1,
		CustomSpecs: map[string]interface{}{"material": "Ballistic Nylon"}})
	return c
}

func validShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		FirstName: "Rick", LastName: "B",
		Address: "1 Main St", City: "Austin", State: "TX",
		ZipCode: "78701", Country: "USA", Phone: "555-0100",
	}
}

func TestPreviewTotals(t *testing.T) {
	svc := New(&stubOrders{}, nil)
	totals := svc.Preview(testCart())

	// subtotal 149.99*2 + 1005.00 = 1304.98; tax 8% = 104.3984 -> 104.40
	assert.True(t, totals.Subtotal.Equal(dec("1304.98")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.ShippingCost.Equal(dec("15.00")), "shipping %s", totals.ShippingCost)
	assert.True(t, totals.Tax.Equal(dec("104.40")), "tax %s", totals.Tax)
	assert.True(t, totals.Total.Equal(dec("1424.38")), "total %s", totals.Total)
}

func TestFinalize(t *testing.T) {
	repo := &stubOrders{}
	svc := New(repo, nil)

	order, err := svc.Finalize(context.Background(), 42, testCart(), validShipping())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[A-F0-9]{8}$`), order.OrderNumber)
	assert.Equal(t, int64(42), order.UserID)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
	assert.Equal(t, "1 Main St, Austin, TX 78701, USA", order.ShippingAddress)
	assert.True(t, order.Total.Equal(dec("1424.38")), "total %s", order.Total)
	assert.Len(t, repo.items, 2)

	var custom *domain.OrderItem
	for i := range repo.items {
		if repo.items[i].ProductID == nil {
			custom = &repo.items[i]
		}
	}
	require.NotNil(t, custom, "expected a custom case item")
	assert.Equal(t, "Custom Hard Case", custom.ProductName)
	assert.NotEmpty(t, custom.CustomSpecs)
}

func TestFinalizeEmptyCart(t *testing.T) {
	svc := New(&stubOrders{}, nil)
	_, err := svc.Finalize(context.Background(), 42, cart.New(), validShipping())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestFinalizeIncompleteShipping(t *testing.T) {
	svc := New(&stubOrders{}, nil)
	shipping := validShipping()
	shipping.Phone = ""
	_, err := svc.Finalize(context.Background(), 42, testCart(), shipping)
	assert.ErrorIs(t, err, ErrIncompleteShipping)
}

func TestFinalizeRetriesOrderNumberCollisions(t *testing.T) {
	repo := &stubOrders{collisions: 2}
	svc := New(repo, nil)

	order, err := svc.Finalize(context.Background(), 42, testCart(), validShipping())
	require.NoError(t, err)
	require.Len(t, repo.seen, 3)
	assert.Equal(t, repo.seen[2], order.OrderNumber)
}

func TestFinalizeGivesUpAfterRetries(t *testing.T) {
	repo := &stubOrders{collisions: 100}
	svc := New(repo, nil)

	_, err := svc.Finalize(context.Background(), 42, testCart(), validShipping())
	assert.True(t, errors.Is(err, domain.ErrAlreadyExists))
	assert.Len(t, repo.seen, orderNumberRetries)
}
