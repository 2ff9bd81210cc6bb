package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bitloom-dev/storefront-api/catalog"
	"github.com/bitloom-dev/storefront-api/config"
	paymentcontroller "github.com/bitloom-dev/storefront-api/controllers/payment"
	"github.com/bitloom-dev/storefront-api/models"
	"github.com/bitloom-dev/storefront-api/routes"
)

const externalRequestTimeout = 15 * time.Second

func main() {
	log.Println("✅ Starting storefront API...")

	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	// Init DB
	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// External collaborators: catalog feed + payment provider
	var feed *catalog.FeedClient
	if cfg.StripeSecretKey != "" {
		feedBase := cfg.CatalogFeedURL
		if feedBase == "" {
			feedBase = cfg.StripeAPIBase
		}
		feed = catalog.NewFeedClient(feedBase, cfg.StripeSecretKey, externalRequestTimeout)
	} else {
		log.Println("⚠️ STRIPE_SECRET_KEY not configured, catalog sync disabled")
	}
	syncer := catalog.NewSyncer(db, feed, cfg.CatalogRefreshInterval)
	stripe := paymentcontroller.NewStripeClient(cfg.StripeSecretKey, cfg.StripeAPIBase, externalRequestTimeout)

	// Setup routes
	routes.SetupRoutes(r, db, routes.Deps{
		JWTSecret:   cfg.JWTSecret,
		Syncer:      syncer,
		Stripe:      stripe,
		FrontendURL: cfg.FrontendURL,
	})

	// Start server
	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.Config) *gorm.DB {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = cfg.DSN()
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	return db
}
