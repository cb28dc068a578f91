package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	productrepo "rickbags/internal/repository/product"
	catalogsvc "rickbags/internal/service/catalog"
)

// home returns the landing page payload: featured products and the
// top-level category navigation.
func (h *api) home(c *gin.Context) {
	featured, err := h.CatalogSvc.Featured(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	categories, err := h.CatalogSvc.RootCategories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"featured": featured, "categories": categories})
}

func (h *api) listProducts(c *gin.Context) {
	f := productrepo.Filter{
		Brand:    c.Query("brand"),
		Material: c.Query("material"),
		Query:    c.Query("q"),
		Sort:     c.Query("sort"),
		Page:     queryInt(c, "page", 1),
		PerPage:  queryInt(c, "per_page", 0),
	}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, "invalid category")
			return
		}
		f.CategoryID = &id
	}
	if raw := c.Query("min_price"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			badRequest(c, "invalid min_price")
			return
		}
		f.MinPrice = &p
	}
	if raw := c.Query("max_price"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			badRequest(c, "invalid max_price")
			return
		}
		f.MaxPrice = &p
	}

	listing, err := h.CatalogSvc.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *api) productDetail(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		badRequest(c, "invalid product id")
		return
	}
	detail, err := h.CatalogSvc.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *api) search(c *gin.Context) {
	products, err := h.CatalogSvc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": products})
}

func (h *api) filterOptions(c *gin.Context) {
	opts, err := h.CatalogSvc.FilterOptions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (h *api) customCaseOptions(c *gin.Context) {
	opts, err := h.CatalogSvc.CustomCaseOptions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (h *api) quoteCustomCase(c *gin.Context) {
	var req catalogsvc.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	quote, err := h.CatalogSvc.QuoteCustomCase(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
