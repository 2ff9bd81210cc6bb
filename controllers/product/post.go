package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bitloom-dev/storefront-api/models"
)

type CreateProductInput struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	Inventory   int              `json:"inventory"`
	Available   *bool            `json:"available"`
	Description *string          `json:"description"`
}

// POST /api/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name == "" || input.Price == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price required"})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be >= 0"})
			return
		}
		if input.Inventory < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "inventory must be >= 0"})
			return
		}

		available := true
		if input.Available != nil {
			available = *input.Available
		}

		product := models.Product{
			Name:        input.Name,
			Price:       *input.Price,
			ImageURL:    input.ImageURL,
			Inventory:   input.Inventory,
			Available:   available,
			Description: input.Description,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
