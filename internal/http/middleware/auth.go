// README: Bearer-credential verification and role gating for gin routes.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"swiftlogix/internal/auth"
	"swiftlogix/internal/observability"
)

const identityKey = "caller.identity"

// Auth verifies the bearer credential and stores the decoded identity on the
// request context. Absence, malformation, and expiry are all rejected before
// any handler logic runs.
func Auth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			observability.AuthFailuresTotal.Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid credential"})
			return
		}
		identity, err := tokens.Verify(strings.TrimPrefix(header, prefix))
		if err != nil {
			observability.AuthFailuresTotal.Inc()
			msg := "missing or invalid credential"
			if errors.Is(err, auth.ErrExpired) {
				msg = "credential expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRoles rejects verified callers whose role is outside the allowed
// set. It is all-or-nothing: there is no partial authorization.
func RequireRoles(allowed ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CallerIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid credential"})
			return
		}
		for _, role := range allowed {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// CallerIdentity returns the identity stored by Auth.
func CallerIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}
