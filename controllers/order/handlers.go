package ordercontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitloom-dev/storefront-api/middleware"
	"github.com/bitloom-dev/storefront-api/models"
)

// POST /api/orders/from-cart
func CreateFromCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, err := CreateOrderFromCart(db, userID, true)
		if err != nil {
			var unavailable *ProductUnavailableError
			switch {
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			case errors.As(err, &unavailable):
				c.JSON(http.StatusBadRequest, gin.H{"error": unavailable.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			}
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/orders
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		orders := []models.Order{}
		if err := db.Preload("Items").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, found := findOwnedOrder(db, c.Param("id"), userID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/orders/:id/pay
func MarkPaidHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, found := findOwnedOrder(db, c.Param("id"), userID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			return markPaid(tx, order)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// DELETE /api/orders/:id
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, found := findOwnedOrder(db, c.Param("id"), userID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		if order.PaymentStatus != models.PaymentStatusPending {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrOrderNotPending.Error()})
			return
		}

		// Canceling deletes the order and cascades its items
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(order).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}

// findOwnedOrder loads an order with its items, scoped to the caller. A
// missing order and someone else's order are indistinguishable to the client.
func findOwnedOrder(db *gorm.DB, orderID string, userID uint) (*models.Order, bool) {
	var order models.Order
	err := db.Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, false
	}
	return &order, true
}
