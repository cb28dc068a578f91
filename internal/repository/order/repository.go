package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rickbags/internal/domain"
)

// StatusUpdate carries an admin status change. ShippedAt/DeliveredAt are
// stamped by the service when the transition warrants it.
type StatusUpdate struct {
	Status         domain.OrderStatus
	TrackingNumber string
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

// Metrics backs the admin dashboard.
type Metrics struct {
	TotalOrders   int64
	TotalRevenue  decimal.Decimal
	PendingOrders int64
}

type Repository interface {
	// CreateWithItems persists the order and its items in one
	// transaction. Returns domain.ErrAlreadyExists on an order number
	// collision so the caller can regenerate and retry.
	CreateWithItems(ctx context.Context, o domain.Order, items []domain.OrderItem) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetForUser(ctx context.Context, id, userID int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	List(ctx context.Context, status string, page, perPage int) ([]domain.Order, int64, error)
	Recent(ctx context.Context, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, upd StatusUpdate) error
	Metrics(ctx context.Context) (Metrics, error)
}
