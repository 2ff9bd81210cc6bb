package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bitloom-dev/storefront-api/models"
)

type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	Inventory   *int             `json:"inventory"`
	Available   *bool            `json:"available"`
	Description *string          `json:"description"`
}

// PUT /api/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Price != nil && input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be >= 0"})
			return
		}
		if input.Inventory != nil && *input.Inventory < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "inventory must be >= 0"})
			return
		}

		// Only fields present in the body are touched
		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.ImageURL != nil {
			product.ImageURL = input.ImageURL
		}
		if input.Inventory != nil {
			product.Inventory = *input.Inventory
		}
		if input.Available != nil {
			product.Available = *input.Available
		}
		if input.Description != nil {
			product.Description = input.Description
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
