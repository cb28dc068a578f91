package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartsvc "rickbags/internal/service/cart"
)

type cartResponse struct {
	Items interface{} `json:"items"`
	Total string      `json:"total"`
	Count int         `json:"count"`
}

func (h *api) cartPayload(c *gin.Context) cartResponse {
	cart := sessionData(c).Cart
	return cartResponse{
		Items: cart,
		Total: cart.Total().StringFixed(2),
		Count: cart.Count(),
	}
}

func (h *api) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartPayload(c))
}

// cartCount backs the header badge; it is polled so it stays cheap.
func (h *api) cartCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": sessionData(c).Cart.Count()})
}

type addItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

func (h *api) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	data := sessionData(c)
	if err := h.CartSvc.AddProduct(c.Request.Context(), data.Cart, req.ProductID, req.Quantity); err != nil {
		h.fail(c, err)
		return
	}
	if err := h.saveSession(c); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartPayload(c))
}

func (h *api) addCustomCase(c *gin.Context) {
	var req cartsvc.CustomCaseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	data := sessionData(c)
	quote, err := h.CartSvc.AddCustomCase(c.Request.Context(), data.Cart, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.saveSession(c); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote, "cart": h.cartPayload(c)})
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *api) updateCartItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	data := sessionData(c)
	if !data.Cart.Update(c.Param("key"), req.Quantity) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err := h.saveSession(c); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartPayload(c))
}

func (h *api) removeCartItem(c *gin.Context) {
	data := sessionData(c)
	data.Cart.Remove(c.Param("key"))
	if err := h.saveSession(c); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartPayload(c))
}

func (h *api) clearCart(c *gin.Context) {
	data := sessionData(c)
	data.Cart.Clear()
	if err := h.saveSession(c); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartPayload(c))
}
