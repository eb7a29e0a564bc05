package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"legal-city.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// AccountIDKey is the context key for the account ID
	AccountIDKey = "accountId"
	// AccountEmailKey is the context key for the account email
	AccountEmailKey = "accountEmail"
	// AccountRoleKey is the context key for the account role
	AccountRoleKey = "accountRole"
	// AccountAdminKey is the context key for the admin flag
	AccountAdminKey = "accountAdmin"
)

// AuthMiddleware requires a valid bearer token and attaches the resolved
// identity to the request context. A missing header is 401; a malformed,
// invalid or expired token is 403.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Access token required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Invalid or expired token",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(AccountIDKey, claims.AccountID)
		c.Set(AccountEmailKey, claims.Email)
		c.Set(AccountRoleKey, claims.Role)
		c.Set(AccountAdminKey, claims.IsAdmin)

		c.Next()
	}
}

// GetAccountID gets the account ID from context
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get(AccountIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := accountID.(uuid.UUID)
	return id, ok
}

// GetAccountRole gets the account role from context
func GetAccountRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(AccountRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(string)
	return r, ok
}

// IsAdmin reports whether the authenticated account carries the admin flag
func IsAdmin(c *gin.Context) bool {
	val, exists := c.Get(AccountAdminKey)
	if !exists {
		return false
	}
	isAdmin, ok := val.(bool)
	return ok && isAdmin
}

// RequireAdmin requires the resolved identity to carry the admin flag. The
// admin flag is a privilege level, distinct from the user/lawyer role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Admin access required",
			})
			return
		}
		c.Next()
	}
}
