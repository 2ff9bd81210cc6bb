package productcontroller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitloom-dev/storefront-api/catalog"
	"github.com/bitloom-dev/storefront-api/models"
)

// GET /api/products
func GetProducts(db *gorm.DB, syncer *catalog.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Refresh from the external feed first; the syncer no-ops when
		// the catalog is still fresh. A feed failure must not block reads.
		if err := syncer.Refresh(); err != nil {
			log.Printf("catalog refresh failed: %v", err)
		}

		products := []models.Product{}
		if err := db.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
