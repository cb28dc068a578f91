package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rickbags/internal/domain"
)

// adminDashboard aggregates the numbers shown on the admin landing page.
func (h *api) adminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	metrics, err := h.OrderSvc.Metrics(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	recent, err := h.OrderSvc.Recent(ctx, 10)
	if err != nil {
		h.fail(c, err)
		return
	}
	productCount, err := h.CatalogSvc.ProductCount(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	userCount, err := h.Users.Count(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalOrders":   metrics.TotalOrders,
		"totalRevenue":  metrics.TotalRevenue,
		"pendingOrders": metrics.PendingOrders,
		"totalProducts": productCount,
		"totalUsers":    userCount,
		"recentOrders":  recent,
	})
}

func (h *api) adminListOrders(c *gin.Context) {
	orders, total, err := h.OrderSvc.List(c.Request.Context(), c.Query("status"),
		queryInt(c, "page", 1), queryInt(c, "per_page", 20))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
}

func (h *api) adminOrderDetail(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		badRequest(c, "invalid order id")
		return
	}
	order, err := h.OrderSvc.GetAny(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type orderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"trackingNumber"`
}

func (h *api) adminUpdateOrderStatus(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		badRequest(c, "invalid order id")
		return
	}
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	err := h.OrderSvc.UpdateStatus(c.Request.Context(), id, domain.OrderStatus(req.Status), req.TrackingNumber)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *api) adminCreateProduct(c *gin.Context) {
	var req domain.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	created, err := h.CatalogSvc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": created})
}

func (h *api) adminUpdateProduct(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		badRequest(c, "invalid product id")
		return
	}
	var req domain.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	req.ID = id
	updated, err := h.CatalogSvc.UpdateProduct(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": updated})
}

func (h *api) adminListReviews(c *gin.Context) {
	var approved *bool
	switch c.Query("approved") {
	case "true":
		v := true
		approved = &v
	case "false":
		v := false
		approved = &v
	}
	reviews, total, err := h.ReviewSvc.List(c.Request.Context(), approved,
		queryInt(c, "page", 1), queryInt(c, "per_page", 20))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total": total})
}

func (h *api) adminApproveReview(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		badRequest(c, "invalid review id")
		return
	}
	if err := h.ReviewSvc.Approve(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

func (h *api) adminListUsers(c *gin.Context) {
	users, total, err := h.Users.List(c.Request.Context(),
		queryInt(c, "page", 1), queryInt(c, "per_page", 20))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

func (h *api) adminListSettings(c *gin.Context) {
	settings, err := h.Settings.All(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type settingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

func (h *api) adminUpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	for key, value := range req.Settings {
		if err := h.Settings.Set(c.Request.Context(), key, value); err != nil {
			h.fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
