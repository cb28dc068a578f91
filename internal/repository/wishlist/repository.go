package wishlist

import (
	"context"

	"rickbags/internal/domain"
)

type Repository interface {
	// Add returns domain.ErrAlreadyExists when the product is already on
	// the user's wishlist.
	Add(ctx context.Context, userID, productID int64) (*domain.WishlistItem, error)
	Remove(ctx context.Context, userID, productID int64) error
	ListProducts(ctx context.Context, userID int64) ([]domain.Product, error)
}
