package paymentcontroller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ordercontroller "github.com/bitloom-dev/storefront-api/controllers/order"
	"github.com/bitloom-dev/storefront-api/middleware"
	"github.com/bitloom-dev/storefront-api/models"
)

var minorUnits = decimal.NewFromInt(100)

// POST /payments/checkout
//
// Snapshots the cart into a pending order, then asks the provider for a
// hosted payment session referencing that order. The order is persisted
// before the provider call so the session metadata can carry a durable id;
// if the provider fails, the order intentionally stays behind. The cart is
// cleared only once the session is confirmed creatable.
func CheckoutHandler(db *gorm.DB, client *StripeClient, frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, err := ordercontroller.CreateOrderFromCart(db, userID, false)
		if err != nil {
			var unavailable *ordercontroller.ProductUnavailableError
			switch {
			case errors.Is(err, ordercontroller.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			case errors.As(err, &unavailable):
				c.JSON(http.StatusBadRequest, gin.H{"error": unavailable.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			}
			return
		}

		lineItems, err := buildLineItems(db, order)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build payment lines"})
			return
		}

		session, err := client.CreateCheckoutSession(
			fmt.Sprintf("%s/?payment=success&order_id=%d", frontendURL, order.ID),
			fmt.Sprintf("%s/?payment=cancel&order_id=%d", frontendURL, order.ID),
			lineItems,
			map[string]string{
				"order_id": strconv.FormatUint(uint64(order.ID), 10),
				"user_id":  strconv.FormatUint(uint64(userID), 10),
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe error: " + err.Error()})
			return
		}

		if err := ordercontroller.ClearCart(db, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"checkout_url": session.URL,
			"order_id":     order.ID,
		})
	}
}

// buildLineItems turns the order's snapshot lines into provider line
// descriptors: unit price in cents plus the product's display name and image.
func buildLineItems(db *gorm.DB, order *models.Order) ([]LineItem, error) {
	lineItems := make([]LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		var product models.Product
		if err := db.First(&product, item.ProductID).Error; err != nil {
			return nil, err
		}

		line := LineItem{
			Name:       product.Name,
			UnitAmount: item.Price.Mul(minorUnits).IntPart(),
			Quantity:   item.Quantity,
		}
		if product.ImageURL != nil {
			line.ImageURL = *product.ImageURL
		}
		lineItems = append(lineItems, line)
	}
	return lineItems, nil
}
