package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rickbags/internal/domain"
	"rickbags/internal/pricing"
	authsvc "rickbags/internal/service/auth"
	cartsvc "rickbags/internal/service/cart"
	catalogsvc "rickbags/internal/service/catalog"
	checkoutsvc "rickbags/internal/service/checkout"
	ordersvc "rickbags/internal/service/order"
	reviewsvc "rickbags/internal/service/review"
)

// fail maps service errors onto HTTP statuses. Anything unmapped is a
// 500 with a generic body; the underlying error goes to the log only.
func (h *api) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, authsvc.ErrEmailTaken),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, reviewsvc.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, authsvc.ErrInvalidToken),
		errors.Is(err, authsvc.ErrPasswordMismatch),
		errors.Is(err, authsvc.ErrValidation),
		errors.Is(err, pricing.ErrInvalidInput),
		errors.Is(err, cartsvc.ErrProductUnavailable),
		errors.Is(err, checkoutsvc.ErrEmptyCart),
		errors.Is(err, checkoutsvc.ErrIncompleteShipping),
		errors.Is(err, ordersvc.ErrInvalidTransition),
		errors.Is(err, reviewsvc.ErrInvalidRating),
		errors.Is(err, catalogsvc.ErrInvalidProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
