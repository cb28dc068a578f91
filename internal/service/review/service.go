// Package review handles customer product reviews. New reviews are held
// for moderation and only surface on product pages once approved.
package review

import (
	"context"
	"errors"
	"strings"

	"rickbags/internal/domain"
	productrepo "rickbags/internal/repository/product"
	reviewrepo "rickbags/internal/repository/review"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrAlreadyReviewed = errors.New("product already reviewed")
)

type Service struct {
	reviews  reviewrepo.Repository
	products productrepo.Repository
}

func New(reviews reviewrepo.Repository, products productrepo.Repository) *Service {
	return &Service{reviews: reviews, products: products}
}

type AddInput struct {
	ProductID int64  `json:"productId"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

// Add submits a review for moderation. One review per user per product.
func (s *Service) Add(ctx context.Context, userID int64, in AddInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	exists, err := s.reviews.ExistsForUser(ctx, in.ProductID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	return s.reviews.Create(ctx, domain.Review{
		ProductID: in.ProductID,
		UserID:    userID,
		Rating:    in.Rating,
		Title:     strings.TrimSpace(in.Title),
		Comment:   strings.TrimSpace(in.Comment),
	})
}

// List returns a moderation page for admins. approved=nil lists all.
func (s *Service) List(ctx context.Context, approved *bool, page, perPage int) ([]domain.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.reviews.List(ctx, approved, page, perPage)
}

// Approve publishes a pending review.
func (s *Service) Approve(ctx context.Context, id int64) error {
	return s.reviews.Approve(ctx, id)
}
