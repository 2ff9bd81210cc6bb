package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bitloom-dev/storefront-api/models"
)

// Access tokens expire after one hour.
const tokenTTL = time.Hour

// IssueToken signs a short-lived access token carrying the user's id and
// email. The id is what the auth middleware hands to handlers; the email is
// informational.
func IssueToken(user *models.User, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
