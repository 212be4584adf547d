package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte(getJWTSecret())

func getJWTSecret() string {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return val
	}
	return "supersecret" // fallback
}

// GenerateToken issues a session token for an administrator account.
func GenerateToken(adminID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": adminID,
		"role":     role,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// RequireAuth ensures a valid JWT is present and stores its claims on the
// context for downstream handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing or invalid Authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token claims"})
			return
		}
		c.Set("admin_id", claims["admin_id"])
		c.Set("role", claims["role"])

		c.Next()
	}
}

// RequireRoles checks the role claim already stored on the context against
// an allowed set. It is the authorization policy step and assumes
// RequireAuth (or RequireAuthWithRoles) ran earlier in the chain.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleIfc, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "role not found in token"})
			return
		}
		role, ok := roleIfc.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "role not found in token"})
			return
		}
		for _, want := range allowed {
			if role == want {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient permissions"})
	}
}

// RequireAuthWithRoles ensures the JWT is valid and the account carries one
// of the allowed roles.
func RequireAuthWithRoles(allowed ...string) gin.HandlerFunc {
	auth := RequireAuth()
	policy := RequireRoles(allowed...)
	return func(c *gin.Context) {
		auth(c)
		if c.IsAborted() {
			return
		}
		policy(c)
	}
}

// CurrentAdminID extracts the authenticated admin's ID from the context.
// JWT numeric claims decode as float64.
func CurrentAdminID(c *gin.Context) uint {
	return uint(c.MustGet("admin_id").(float64))
}

// CurrentRole extracts the authenticated admin's role from the context.
func CurrentRole(c *gin.Context) string {
	role, _ := c.MustGet("role").(string)
	return role
}
