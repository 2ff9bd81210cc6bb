package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartcontroller "github.com/bitloom-dev/storefront-api/controllers/cart"
	ordercontroller "github.com/bitloom-dev/storefront-api/controllers/order"
	productcontroller "github.com/bitloom-dev/storefront-api/controllers/product"
	"github.com/bitloom-dev/storefront-api/middleware"
)

// SetupAPIRoutes registers the /api endpoints. Product listing is public;
// everything else requires a bearer token.
func SetupAPIRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	// Listing products is the one public catalog read; it also triggers
	// the time-boxed feed refresh.
	r.GET("/api/products", productcontroller.GetProducts(db, deps.Syncer))

	api := r.Group("/api")
	api.Use(middleware.ValidateToken(deps.JWTSecret))
	{
		// ──────────────── Products ────────────────
		api.GET("/products/:id", productcontroller.GetProductByID(db))
		api.POST("/products", productcontroller.CreateProduct(db))
		api.PUT("/products/:id", productcontroller.UpdateProduct(db))
		api.DELETE("/products/:id", productcontroller.DeleteProduct(db))

		// ──────────────── Shopping Cart ────────────────
		api.GET("/cart", cartcontroller.ListCart(db))
		api.POST("/cart", cartcontroller.AddToCart(db))
		api.PUT("/cart/:id", cartcontroller.UpdateCartItem(db))
		api.DELETE("/cart/:id", cartcontroller.DeleteCartItem(db))

		// ──────────────── Orders ────────────────
		api.GET("/orders", ordercontroller.ListOrdersHandler(db))
		api.POST("/orders/from-cart", ordercontroller.CreateFromCartHandler(db))
		api.GET("/orders/:id", ordercontroller.GetOrderHandler(db))
		api.PUT("/orders/:id/pay", ordercontroller.MarkPaidHandler(db))
		api.DELETE("/orders/:id", ordercontroller.CancelOrderHandler(db))
	}
}
