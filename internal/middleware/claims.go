package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/masstest/masstest-backend/internal/authclient"
	"github.com/masstest/masstest-backend/internal/authz"
)

const (
	// ContextKeyClaims is the Gin context key for resolved claims.
	ContextKeyClaims = "claims"
)

// ResolveClaims extracts the bearer token and resolves it through the claims
// oracle, storing the assertion in the Gin context. It never aborts: some
// routes are public, and the others decide per-endpoint how to answer an
// invalid assertion (401) versus a denied one (403).
func ResolveClaims(resolver authclient.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyClaims, resolver.Resolve(c.Request.Context(), extractBearer(c)))
		c.Next()
	}
}

// GetClaims retrieves the resolved claims from the Gin context. Returns the
// invalid assertion if the middleware was not applied.
func GetClaims(c *gin.Context) authz.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return authz.Invalid()
	}
	claims, ok := val.(authz.Claims)
	if !ok {
		return authz.Invalid()
	}
	return claims
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
