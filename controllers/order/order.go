package ordercontroller

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bitloom-dev/storefront-api/models"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrOrderNotPending = errors.New("only pending orders can be canceled")
)

// ProductUnavailableError names the cart line that blocked order creation.
type ProductUnavailableError struct {
	ProductID uint
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %d not available", e.ProductID)
}

// CreateOrderFromCart snapshots the user's current cart into a new pending
// order. Every line's price is copied from the product at this instant, so
// later catalog changes never touch the order. The whole thing runs in one
// transaction: if any referenced product is missing or unavailable, nothing
// is persisted and the cart is left untouched.
//
// clearCart controls whether the cart is emptied in the same transaction
// (the from-cart path) or left for the caller to clear after an external
// confirmation (the checkout path).
func CreateOrderFromCart(db *gorm.DB, userID uint, clearCart bool) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(cartItems))

		for _, ci := range cartItems {
			var product models.Product
			err := tx.First(&product, ci.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ProductUnavailableError{ProductID: ci.ProductID}
			}
			if err != nil {
				return err
			}
			if !product.Available {
				return &ProductUnavailableError{ProductID: ci.ProductID}
			}

			// Price snapshot
			orderItems = append(orderItems, models.OrderItem{
				ProductID:     ci.ProductID,
				Quantity:      ci.Quantity,
				Price:         product.Price,
				PaymentStatus: models.PaymentStatusPending,
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity))))
		}

		order = models.Order{
			UserID:        userID,
			TotalPrice:    total,
			PaymentStatus: models.PaymentStatusPending,
			OrderRef:      generateOrderRef(),
			Items:         orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if clearCart {
			if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// ClearCart removes every cart item the user owns. The checkout path calls
// this only after the payment session has been confirmed creatable.
func ClearCart(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// markPaid transitions the order and all of its items to paid. Paid is
// terminal; the transition is what a verified provider callback would drive.
func markPaid(tx *gorm.DB, order *models.Order) error {
	if err := tx.Model(order).Update("payment_status", models.PaymentStatusPaid).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.OrderItem{}).
		Where("order_id = ?", order.ID).
		Update("payment_status", models.PaymentStatusPaid).Error; err != nil {
		return err
	}
	order.PaymentStatus = models.PaymentStatusPaid
	for i := range order.Items {
		order.Items[i].PaymentStatus = models.PaymentStatusPaid
	}
	return nil
}

// generateOrderRef builds a unique external order reference.
// Example: 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
