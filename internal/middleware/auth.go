package middleware

import (
	"net/http"
	"strings"

	"designmatch_backend/internal/auth"
	"designmatch_backend/internal/logger"
	"designmatch_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Bearer token and stores the claims in
// both the gin context and the request context (for log correlation).
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userType", claims.UserType)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireUserTypes restricts a route to the given user types.
func RequireUserTypes(types ...models.UserType) gin.HandlerFunc {
	typeSet := make(map[models.UserType]bool)
	for _, t := range types {
		typeSet[t] = true
	}

	return func(c *gin.Context) {
		typeVal, exists := c.Get("userType")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no user type"})
			return
		}

		userType, ok := typeVal.(models.UserType)
		if !ok {
			typeStr, isString := typeVal.(string)
			if !isString {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid user type"})
				return
			}
			userType = models.UserType(typeStr)
		}

		if !typeSet[userType] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}

// GetUserID extracts the authenticated user ID from the context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

// GetUserType extracts the authenticated user type from the context.
func GetUserType(c *gin.Context) models.UserType {
	typeVal, exists := c.Get("userType")
	if !exists {
		return ""
	}

	switch v := typeVal.(type) {
	case models.UserType:
		return v
	case string:
		return models.UserType(v)
	default:
		return ""
	}
}
