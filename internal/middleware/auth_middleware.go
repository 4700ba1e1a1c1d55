package middleware

import (
	"errors"
	"net/http"
	"strings"

	"kanny/internal/auth"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user's uuid.UUID.
const UserIDKey = "user_id"

// JWTAuthMiddleware rejects requests without a valid bearer access token and
// stores the token's user ID in the request context.
func JWTAuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		userID, err := tokens.VerifyAccess(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrInvalidClaims) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
