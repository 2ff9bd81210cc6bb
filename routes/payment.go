package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	paymentcontroller "github.com/bitloom-dev/storefront-api/controllers/payment"
	"github.com/bitloom-dev/storefront-api/middleware"
)

// SetupPaymentRoutes registers the /payments endpoints.
func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	payments := r.Group("/payments")
	payments.Use(middleware.ValidateToken(deps.JWTSecret))
	{
		payments.POST("/checkout", paymentcontroller.CheckoutHandler(db, deps.Stripe, deps.FrontendURL))
	}
}
