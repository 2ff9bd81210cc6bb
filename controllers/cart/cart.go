package cartcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bitloom-dev/storefront-api/middleware"
	"github.com/bitloom-dev/storefront-api/models"
)

type AddCartItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`

	// Escape hatch for externally-sourced catalog ids that haven't been
	// materialized locally yet: when the product is unknown but name and
	// price are supplied, the row is created on the fly.
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

type UpdateCartItemInput struct {
	Quantity *int `json:"quantity"`
}

// GET /api/cart
func ListCart(db *gorm.DB) gin.HandlerFunc {
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

		items := []models.CartItem{}
		if err := db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

// POST /api/cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.ProductID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id required"})
			return
		}
		if input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be > 0"})
			return
		}

		var product models.Product
		err := db.First(&product, input.ProductID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if input.Name == nil || input.Price == nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			product = models.Product{
				ID:        input.ProductID,
				Name:      *input.Name,
				Price:     *input.Price,
				Available: true,
			}
			if err := db.Create(&product).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
				return
			}
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		case !product.Available:
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		// Repeat add for the same product accumulates quantity on the
		// existing row instead of duplicating it.
		var item models.CartItem
		err = db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{
				UserID:    userID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			c.JSON(http.StatusCreated, item)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		item.Quantity += input.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

// PUT /api/cart/:id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		if *input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be > 0"})
			return
		}

		// Ownership scoped lookup: someone else's item reads as missing
		var item models.CartItem
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		item.Quantity = *input.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// DELETE /api/cart/:id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
