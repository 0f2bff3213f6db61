package middleware

import (
	"net/http"
	"strings"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/apierror"

	"github.com/gin-gonic/gin"
)

const UserIDKey = "user_id"

// TokenParser resolves a bearer token to the user id it was issued for.
type TokenParser interface {
	Parse(token string) (uint, error)
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, tokenStr, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Not authenticated"))
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(tokenStr))
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user id, or 0 outside JWTAuth.
func GetUserID(c *gin.Context) uint {
	return c.GetUint(UserIDKey)
}
