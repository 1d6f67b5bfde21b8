package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-erp/records-service/internal/auth"
	"github.com/campus-erp/records-service/internal/models"
)

const identityContextKey = "identity"

// JWTAuthMiddleware authenticates requests with the service's own HS256
// tokens and places the verified identity in the request context; handlers
// pass it on to services explicitly.
type JWTAuthMiddleware struct {
	tokens *auth.TokenService
}

func NewJWTAuthMiddleware(tokens *auth.TokenService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{tokens: tokens}
}

// AuthMiddleware validates the bearer token and stores the identity.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header missing.")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortUnauthorized(c, "Invalid authorization header format.")
			return
		}

		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token.")
			return
		}

		identity := claims.Identity()
		c.Set(identityContextKey, identity)
		c.Set("user_id", identity.ID)
		c.Set("user_role", identity.Role)

		c.Next()
	}
}

// RequireRole rejects callers whose verified role is not in the list.
func (m *JWTAuthMiddleware) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := IdentityFromContext(c)
		if err != nil {
			abortUnauthorized(c, "User not authenticated.")
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"message": "Insufficient permissions.",
			"success": false,
		})
		c.Abort()
	}
}

// IdentityFromContext extracts the verified caller identity.
func IdentityFromContext(c *gin.Context) (auth.Identity, error) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return auth.Identity{}, fmt.Errorf("identity not found in context")
	}
	identity, ok := value.(auth.Identity)
	if !ok {
		return auth.Identity{}, fmt.Errorf("invalid identity type in context")
	}
	return identity, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"message": message,
		"success": false,
	})
	c.Abort()
}
