// Package order enforces the fulfilment state machine on top of the
// orders repository.
package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"rickbags/internal/domain"
	orderrepo "rickbags/internal/repository/order"
)

// ErrInvalidTransition is returned when a status change is not allowed
// from the order's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// transitions maps each status to the statuses reachable from it.
// Delivered and cancelled are terminal.
var transitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderPending:    {domain.OrderProcessing, domain.OrderCancelled},
	domain.OrderProcessing: {domain.OrderShipped, domain.OrderCancelled},
	domain.OrderShipped:    {domain.OrderDelivered},
}

func canTransition(from, to domain.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Service struct {
	repo   orderrepo.Repository
	logger *log.Logger
	now    func() time.Time
}

func New(repo orderrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Get returns an order with its items, scoped to the owning user.
func (s *Service) Get(ctx context.Context, id, userID int64) (*domain.Order, error) {
	return s.repo.GetForUser(ctx, id, userID)
}

// GetAny returns an order regardless of owner, for admin views.
func (s *Service) GetAny(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// History lists a user's orders, newest first.
func (s *Service) History(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// List returns a page of orders for the admin table, optionally filtered
// by status.
func (s *Service) List(ctx context.Context, status string, page, perPage int) ([]domain.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.repo.List(ctx, status, page, perPage)
}

// Recent returns the latest orders for the admin dashboard.
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.repo.Recent(ctx, limit)
}

// Metrics aggregates order counts and revenue for the admin dashboard.
func (s *Service) Metrics(ctx context.Context) (orderrepo.Metrics, error) {
	return s.repo.Metrics(ctx)
}

// UpdateStatus applies an admin status change, validating it against the
// state machine. Moving to shipped stamps ShippedAt, moving to delivered
// stamps DeliveredAt.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, trackingNumber string) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canTransition(o.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, status)
	}

	upd := orderrepo.StatusUpdate{Status: status, TrackingNumber: trackingNumber}
	switch status {
	case domain.OrderShipped:
		now := s.now().UTC()
		upd.ShippedAt = &now
	case domain.OrderDelivered:
		now := s.now().UTC()
		upd.DeliveredAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, id, upd); err != nil {
		return err
	}
	s.logger.Printf("order: id=%d status %s -> %s", id, o.Status, status)
	return nil
}

// Cancel moves a customer's own order to cancelled if it has not shipped.
func (s *Service) Cancel(ctx context.Context, id, userID int64) error {
	o, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if !canTransition(o.Status, domain.OrderCancelled) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, domain.OrderCancelled)
	}
	return s.repo.UpdateStatus(ctx, id, orderrepo.StatusUpdate{Status: domain.OrderCancelled})
}
