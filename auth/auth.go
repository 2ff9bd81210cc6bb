package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bitloom-dev/storefront-api/models"
)

type RegisterInput struct {
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	PhoneNumber      *string `json:"phone_number"`
	RecoveryQuestion *string `json:"recovery_question"`
	RecoveryAnswer   *string `json:"recovery_answer"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordInput struct {
	Email          string `json:"email"`
	RecoveryAnswer string `json:"recovery_answer"`
	NewPassword    string `json:"new_password"`
}

// POST /auth/register
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Email == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required for registration"})
			return
		}

		// Recovery question and answer only make sense together
		if (input.RecoveryQuestion != nil) != (input.RecoveryAnswer != nil) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recovery_question and recovery_answer must be supplied together"})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing users"})
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			Email:            input.Email,
			PhoneNumber:      input.PhoneNumber,
			PasswordHash:     string(passwordHash),
			RecoveryQuestion: input.RecoveryQuestion,
		}

		if input.RecoveryAnswer != nil {
			answerHash, err := bcrypt.GenerateFromPassword([]byte(normalizeAnswer(*input.RecoveryAnswer)), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash recovery answer"})
				return
			}
			hash := string(answerHash)
			user.RecoveryAnswerHash = &hash
		}

		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":           user.ID,
			"email":        user.Email,
			"phone_number": user.PhoneNumber,
		})
	}
}

// POST /auth/login
func LoginHandler(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Email == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "bad credentials"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "bad credentials"})
			return
		}

		token, err := IssueToken(&user, secret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"access_token": token})
	}
}

// POST /auth/forgot-password
func ForgotPasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ForgotPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Email == "" || input.RecoveryAnswer == "" || input.NewPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email, recovery_answer and new_password required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		if user.RecoveryAnswerHash == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong recovery answer"})
			return
		}

		if err := bcrypt.CompareHashAndPassword(
			[]byte(*user.RecoveryAnswerHash),
			[]byte(normalizeAnswer(input.RecoveryAnswer)),
		); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong recovery answer"})
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		if err := db.Model(&user).Update("password_hash", string(passwordHash)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	}
}

// Recovery answers match case-insensitively and ignore surrounding spaces.
func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
