// Package checkout turns a session cart plus shipping details into a
// persisted order.
package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rickbags/internal/cart"
	"rickbags/internal/domain"
	orderrepo "rickbags/internal/repository/order"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrIncompleteShipping = errors.New("shipping information incomplete")
)

var (
	flatShipping = decimal.NewFromInt(15)
	taxRate      = decimal.New(8, -2) // 0.08
)

const orderNumberRetries = 5

type Service struct {
	orders orderrepo.Repository
	logger *log.Logger
}

func New(orders orderrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, logger: logger}
}

// Totals is the checkout summary: flat-rate shipping plus 8% tax on the
// subtotal, each rounded to cents.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
}

// Preview computes the totals for the current cart without creating an
// order.
func (s *Service) Preview(c cart.Cart) Totals {
	subtotal := c.Total().Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{
		Subtotal:     subtotal,
		ShippingCost: flatShipping,
		Tax:          tax,
		Total:        subtotal.Add(flatShipping).Add(tax).Round(2),
	}
}

// Finalize creates the order from the session cart. The cart must be
// non-empty and the shipping info complete. Order numbers are 8 uppercase
// characters drawn from a UUID; a unique-constraint collision regenerates
// the number and retries.
func (s *Service) Finalize(ctx context.Context, userID int64, c cart.Cart, shipping domain.ShippingInfo) (*domain.Order, error) {
	if c.Count() == 0 {
		return nil, ErrEmptyCart
	}
	if !shipping.Complete() {
		return nil, ErrIncompleteShipping
	}

	totals := s.Preview(c)
	items := make([]domain.OrderItem, 0, c.Count())
	for _, line := range c {
		items = append(items, domain.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Price:       line.Price,
			Quantity:    line.Quantity,
			CustomSpecs: line.CustomSpecs,
		})
	}

	order := domain.Order{
		UserID:          userID,
		Subtotal:        totals.Subtotal,
		ShippingCost:    totals.ShippingCost,
		Tax:             totals.Tax,
		Discount:        decimal.Zero,
		Total:           totals.Total,
		Status:          domain.OrderPending,
		PaymentStatus:   domain.PaymentPending,
		ShippingAddress: shipping.FormatAddress(),
		ShippingPhone:   shipping.Phone,
	}

	var lastErr error
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		order.OrderNumber = newOrderNumber()
		created, err := s.orders.CreateWithItems(ctx, order, items)
		if err == nil {
			s.logger.Printf("checkout: order=%s user=%d total=%s items=%d",
				created.OrderNumber, userID, created.Total.StringFixed(2), len(items))
			return created, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func newOrderNumber() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
