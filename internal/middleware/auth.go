package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bizpos/internal/model"
	"bizpos/internal/service"
)

const claimsKey = "auth.claims"

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	ParseToken(token string) (*service.Claims, error)
}

// JWTAuth extracts and validates the bearer token, storing the claims
// in the request context. Refresh tokens are rejected here: they only
// work on the refresh endpoint.
func JWTAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			unauthorized(c, "authentication required")
			return
		}
		claims, err := parser.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil || claims.Refresh {
			unauthorized(c, "invalid or expired token")
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Require gates a route group on a role predicate. A caller whose role
// does not pass is pointed back to login rather than told the resource
// exists but is forbidden.
func Require(allowed func(model.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !allowed(claims.Role) {
			unauthorized(c, "this account cannot access this resource")
			return
		}
		c.Next()
	}
}

// GetClaims returns the authenticated claims, or nil outside JWTAuth.
func GetClaims(c *gin.Context) *service.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.Claims)
	return claims
}

func unauthorized(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"detail": detail,
		"login":  "/v1/auth/login",
	})
}
