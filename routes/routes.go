package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitloom-dev/storefront-api/catalog"
	paymentcontroller "github.com/bitloom-dev/storefront-api/controllers/payment"
)

// Deps bundles what the route groups need beyond the DB handle.
type Deps struct {
	JWTSecret   string
	Syncer      *catalog.Syncer
	Stripe      *paymentcontroller.StripeClient
	FrontendURL string
}

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, deps)

	// Catalog, cart and order routes under /api
	SetupAPIRoutes(r, db, deps)

	// Payment session routes
	SetupPaymentRoutes(r, db, deps)
}
