package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitloom-dev/storefront-api/auth"
)

// SetupAuthRoutes registers the public /auth endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db, deps.JWTSecret))
		authGroup.POST("/forgot-password", auth.ForgotPasswordHandler(db))
	}
}
