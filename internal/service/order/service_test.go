package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"rickbags/internal/domain"
	orderrepo "rickbags/internal/repository/order"
)

type stubRepo struct {
	order   *domain.Order
	updated *orderrepo.StatusUpdate
}

func (s *stubRepo) CreateWithItems(_ context.Context, o domain.Order, _ []domain.OrderItem) (*domain.Order, error) {
	return &o, nil
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, domain.ErrNotFound
	}
	return s.order, nil
}

func (s *stubRepo) GetForUser(_ context.Context, id, userID int64) (*domain.Order, error) {
	if s.order == nil || s.order.ID != id || s.order.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return s.order, nil
}

func (s *stubRepo) ListByUser(_ context.Context, _ int64) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubRepo) List(_ context.Context, _ string, _, _ int) ([]domain.Order, int64, error) {
	return nil, 0, nil
}

func (s *stubRepo) Recent(_ context.Context, _ int) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, _ int64, upd orderrepo.StatusUpdate) error {
	s.updated = &upd
	return nil
}

func (s *stubRepo) Metrics(_ context.Context) (orderrepo.Metrics, error) {
	return orderrepo.Metrics{}, nil
}

func TestTransitions(t *testing.T) {
	cases := []struct {
		from, to domain.OrderStatus
		ok       bool
	}{
		{domain.OrderPending, domain.OrderProcessing, true},
		{domain.OrderPending, domain.OrderCancelled, true},
		{domain.OrderPending, domain.OrderShipped, false},
		{domain.OrderPending, domain.OrderDelivered, false},
		{domain.OrderProcessing, domain.OrderShipped, true},
		{domain.OrderProcessing, domain.OrderCancelled, true},
		{domain.OrderProcessing, domain.OrderDelivered, false},
		{domain.OrderShipped, domain.OrderDelivered, true},
		{domain.OrderShipped, domain.OrderCancelled, false},
		{domain.OrderDelivered, domain.OrderProcessing, false},
		{domain.OrderCancelled, domain.OrderPending, false},
	}
	for _, tc := range cases {
		if got := canTransition(tc.from, tc.to); got != tc.ok {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestUpdateStatusStampsShippedAt(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: 1, UserID: 9, Status: domain.OrderProcessing}}
	svc := New(repo, nil)
	shipped := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return shipped }

	if err := svc.UpdateStatus(context.Background(), 1, domain.OrderShipped, "TRACK123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updated == nil || repo.updated.ShippedAt == nil || !repo.updated.ShippedAt.Equal(shipped) {
		t.Fatalf("expected ShippedAt stamped, got %+v", repo.updated)
	}
	if repo.updated.TrackingNumber != "TRACK123" {
		t.Fatalf("expected tracking number carried, got %q", repo.updated.TrackingNumber)
	}
	if repo.updated.DeliveredAt != nil {
		t.Fatalf("DeliveredAt must not be set on ship")
	}
}

func TestUpdateStatusStampsDeliveredAt(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: 1, Status: domain.OrderShipped}}
	svc := New(repo, nil)

	if err := svc.UpdateStatus(context.Background(), 1, domain.OrderDelivered, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updated == nil || repo.updated.DeliveredAt == nil {
		t.Fatalf("expected DeliveredAt stamped")
	}
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: 1, Status: domain.OrderDelivered}}
	svc := New(repo, nil)

	err := svc.UpdateStatus(context.Background(), 1, domain.OrderProcessing, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if repo.updated != nil {
		t.Fatalf("repository must not be touched on invalid transition")
	}
}

func TestCancel(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: 1, UserID: 9, Status: domain.OrderPending}}
	svc := New(repo, nil)

	if err := svc.Cancel(context.Background(), 1, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updated == nil || repo.updated.Status != domain.OrderCancelled {
		t.Fatalf("expected cancelled update, got %+v", repo.updated)
	}
}

func TestCancelShippedOrderFails(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: 1, UserID: 9, Status: domain.OrderShipped}}
	svc := New(repo, nil)

	if err := svc.Cancel(context.Background(), 1, 9); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCancelOtherUsersOrder(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: 1, UserID: 9, Status: domain.OrderPending}}
	svc := New(repo, nil)

	if err := svc.Cancel(context.Background(), 1, 8); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign order, got %v", err)
	}
}
