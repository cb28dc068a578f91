package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rickbags/internal/domain"
	checkoutsvc "rickbags/internal/service/checkout"
)

func (h *api) saveShipping(c *gin.Context) {
	var req domain.ShippingInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if !req.Complete() {
		h.fail(c, checkoutsvc.ErrIncompleteShipping)
		return
	}

	data := sessionData(c)
	data.Shipping = &req
	if err := h.saveSession(c); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// checkoutSummary shows the totals and shipping info captured so far.
func (h *api) checkoutSummary(c *gin.Context) {
	data := sessionData(c)
	if data.Cart.Count() == 0 {
		h.fail(c, checkoutsvc.ErrEmptyCart)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totals":   h.CheckoutS.Preview(data.Cart),
		"shipping": data.Shipping,
	})
}

// completeCheckout finalizes the order from the session cart and clears
// the cart and shipping info on success.
func (h *api) completeCheckout(c *gin.Context) {
	data := sessionData(c)
	if data.Shipping == nil {
		h.fail(c, checkoutsvc.ErrIncompleteShipping)
		return
	}

	order, err := h.CheckoutS.Finalize(c.Request.Context(), currentUser(c).ID, data.Cart, *data.Shipping)
	if err != nil {
		h.fail(c, err)
		return
	}

	data.Cart.Clear()
	data.Shipping = nil
	if err := h.saveSession(c); err != nil {
		// The order exists; a stale session cart is recoverable.
		h.logger.Printf("checkout: session save after order %s: %v", order.OrderNumber, err)
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}
