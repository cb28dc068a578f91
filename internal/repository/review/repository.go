package review

import (
	"context"

	"rickbags/internal/domain"
)

// RatingSummary aggregates approved reviews for a product.
type RatingSummary struct {
	Average float64
	Count   int64
}

type Repository interface {
	Create(ctx context.Context, r domain.Review) (*domain.Review, error)
	ExistsForUser(ctx context.Context, productID, userID int64) (bool, error)
	ListApprovedByProduct(ctx context.Context, productID int64, limit int) ([]domain.Review, error)
	Summary(ctx context.Context, productID int64) (RatingSummary, error)
	List(ctx context.Context, approved *bool, page, perPage int) ([]domain.Review, int64, error)
	Approve(ctx context.Context, id int64) error
}
