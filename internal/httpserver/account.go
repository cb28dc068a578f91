package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reviewsvc "rickbags/internal/service/review"
)

func (h *api) orderHistory(c *gin.Context) {
	orders, err := h.OrderSvc.History(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *api) orderDetail(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		badRequest(c, "invalid order id")
		return
	}
	order, err := h.OrderSvc.Get(c.Request.Context(), id, currentUser(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *api) cancelOrder(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		badRequest(c, "invalid order id")
		return
	}
	if err := h.OrderSvc.Cancel(c.Request.Context(), id, currentUser(c).ID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (h *api) wishlistList(c *gin.Context) {
	products, err := h.Wishlist.ListProducts(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *api) wishlistAdd(c *gin.Context) {
	productID, ok := paramInt64(c, "productID")
	if !ok {
		badRequest(c, "invalid product id")
		return
	}
	item, err := h.Wishlist.Add(c.Request.Context(), currentUser(c).ID, productID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *api) wishlistRemove(c *gin.Context) {
	productID, ok := paramInt64(c, "productID")
	if !ok {
		badRequest(c, "invalid product id")
		return
	}
	if err := h.Wishlist.Remove(c.Request.Context(), currentUser(c).ID, productID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (h *api) addReview(c *gin.Context) {
	var req reviewsvc.AddInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	r, err := h.ReviewSvc.Add(c.Request.Context(), currentUser(c).ID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": r, "status": "pending approval"})
}
