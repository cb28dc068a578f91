package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"rickbags/internal/config"
	"rickbags/internal/mailer"
	newsletterrepo "rickbags/internal/repository/newsletter"
	settingsrepo "rickbags/internal/repository/settings"
	userrepo "rickbags/internal/repository/user"
	wishlistrepo "rickbags/internal/repository/wishlist"
	authsvc "rickbags/internal/service/auth"
	cartsvc "rickbags/internal/service/cart"
	catalogsvc "rickbags/internal/service/catalog"
	checkoutsvc "rickbags/internal/service/checkout"
	ordersvc "rickbags/internal/service/order"
	reviewsvc "rickbags/internal/service/review"
)

// Deps holds everything the handlers need.
type Deps struct {
	Sessions   sessionStore
	Users      userrepo.Repository
	Wishlist   wishlistrepo.Repository
	Newsletter newsletterrepo.Repository
	Settings   settingsrepo.Repository
	AuthSvc    *authsvc.Service
	CatalogSvc *catalogsvc.Service
	CartSvc    *cartsvc.Service
	CheckoutS  *checkoutsvc.Service
	OrderSvc   *ordersvc.Service
	ReviewSvc  *reviewsvc.Service
	Mailer     mailer.Mailer
	Cfg        config.Config
}

// api bundles dependencies for the handler methods.
type api struct {
	Deps
	logger *log.Logger
}

// buildRouter wires routes for the storefront and admin API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, rdb *redis.Client, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, rdb))

	h := &api{Deps: deps, logger: logger}

	v1 := router.Group("/api", h.sessionMiddleware())

	// Storefront.
	v1.GET("/home", h.home)
	v1.GET("/products", h.listProducts)
	v1.GET("/products/:id", h.productDetail)
	v1.GET("/search", h.search)
	v1.GET("/filters", h.filterOptions)
	v1.GET("/custom-case/options", h.customCaseOptions)
	v1.POST("/custom-case/quote", h.quoteCustomCase)
	v1.POST("/contact", h.contact)
	v1.POST("/newsletter/subscribe", h.subscribeNewsletter)

	// Session cart.
	v1.GET("/cart", h.getCart)
	v1.GET("/cart/count", h.cartCount)
	v1.POST("/cart/items", h.addCartItem)
	v1.POST("/cart/custom", h.addCustomCase)
	v1.PUT("/cart/items/:key", h.updateCartItem)
	v1.DELETE("/cart/items/:key", h.removeCartItem)
	v1.DELETE("/cart", h.clearCart)

	// Auth.
	v1.POST("/auth/register", h.register)
	v1.POST("/auth/login", h.login)
	v1.POST("/auth/logout", h.logout)
	v1.POST("/auth/forgot-password", h.forgotPassword)
	v1.POST("/auth/reset-password", h.resetPassword)

	// Authenticated customer surface.
	authed := v1.Group("", h.authRequired())
	authed.GET("/auth/me", h.me)
	authed.PUT("/auth/profile", h.updateProfile)
	authed.POST("/checkout/shipping", h.saveShipping)
	authed.GET("/checkout/summary", h.checkoutSummary)
	authed.POST("/checkout/complete", h.completeCheckout)
	authed.GET("/orders", h.orderHistory)
	authed.GET("/orders/:id", h.orderDetail)
	authed.POST("/orders/:id/cancel", h.cancelOrder)
	authed.GET("/wishlist", h.wishlistList)
	authed.POST("/wishlist/:productID", h.wishlistAdd)
	authed.DELETE("/wishlist/:productID", h.wishlistRemove)
	authed.POST("/reviews", h.addReview)

	// Admin surface.
	admin := v1.Group("/admin", h.authRequired(), h.adminRequired())
	admin.GET("/dashboard", h.adminDashboard)
	admin.GET("/orders", h.adminListOrders)
	admin.GET("/orders/:id", h.adminOrderDetail)
	admin.PUT("/orders/:id/status", h.adminUpdateOrderStatus)
	admin.POST("/products", h.adminCreateProduct)
	admin.PUT("/products/:id", h.adminUpdateProduct)
	admin.GET("/reviews", h.adminListReviews)
	admin.POST("/reviews/:id/approve", h.adminApproveReview)
	admin.GET("/users", h.adminListUsers)
	admin.GET("/settings", h.adminListSettings)
	admin.PUT("/settings", h.adminUpdateSettings)

	return router, nil
}
