package api

import (
	"net/http" // HTTP status codes
	"time"     // Session lifetime

	"travel_booking/internal/middleware" // Session, admin and logging middleware
	"travel_booking/internal/service"    // Domain services

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Form binding
	"github.com/go-playground/validator/v10" // Custom binding validators
)

// Deps are the collaborators the HTTP surface needs
type Deps struct {
	Catalog       *service.CatalogService
	Cart          *service.CartService
	Bookings      *service.BookingService
	Identity      *service.IdentityService
	Inventory     *service.InventoryService
	Sessions      middleware.PrincipalLoader // Usually the identity service
	JWTSecret     string                     // Session signing key
	SessionTTL    time.Duration              // Session lifetime
	SecureCookies bool                       // Mark cookies Secure (production)
	HTML          bool                       // Render templates instead of JSON
}

// RegisterValidators installs the custom form validators on gin's binding engine
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("isodate", isoDate)
	}
}

// Routes registers every page and endpoint on r
func Routes(r *gin.Engine, d Deps) {
	RegisterValidators()
	sessions := d.Sessions
	if sessions == nil {
		sessions = d.Identity
	}
	html := d.HTML
	r.Use(func(c *gin.Context) {
		c.Set(htmlKey, html)
		c.Next()
	})
	r.Use(middleware.Session(d.JWTSecret, sessions))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public catalog
	r.GET("/", HomeHandler(d.Catalog))
	r.GET("/search", SearchHandler(d.Catalog))
	r.GET("/package/:id", PackageDetailHandler(d.Catalog))

	// Accounts
	r.GET("/login", LoginPageHandler())
	r.POST("/login", LoginHandler(d.Identity, d.JWTSecret, d.SessionTTL, d.SecureCookies))
	r.GET("/register", RegisterPageHandler())
	r.POST("/register", RegisterHandler(d.Identity))

	// Customer routes (login required)
	user := r.Group("")
	user.Use(middleware.RequireLogin())
	user.GET("/logout", LogoutHandler())
	user.POST("/add_to_cart", AddToCartHandler(d.Cart))
	user.GET("/cart", CartHandler(d.Cart))
	user.GET("/remove_from_cart/:id", RemoveFromCartHandler(d.Cart))
	user.GET("/checkout", CheckoutHandler(d.Cart))
	user.POST("/process_payment", ProcessPaymentHandler(d.Bookings))
	user.GET("/profile", ProfileHandler(d.Bookings))
	user.GET("/cancel_booking/:id", CancelBookingHandler(d.Bookings))
	user.GET("/api/cart_count", CartCountHandler(d.Cart))

	// Admin routes (admin flag required)
	admin := r.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.GET("", AdminDashboardHandler(d.Catalog, d.Bookings))
	admin.GET("/add_package", AddPackagePageHandler())
	admin.POST("/add_package", AddPackageHandler(d.Inventory))
	admin.GET("/edit_package/:id", EditPackagePageHandler(d.Catalog))
	admin.POST("/edit_package/:id", EditPackageHandler(d.Inventory))
	admin.GET("/delete_package/:id", DeletePackageHandler(d.Inventory))
}
