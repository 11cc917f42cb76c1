package middleware

import (
	"net/http"
	"strings"

	"talentshout/models"
	"talentshout/utils"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthMiddleware validates the bearer token, checks its hash against the auth
// cache, and stores the resulting principal on the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractPrincipalFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// The cached hash is the currently issued session; a mismatch means
		// the token was superseded by a newer login.
		cached, err := utils.GetAuthCacheClient().Get(c.Request.Context(), utils.AuthCachePrefix+subject).Result()
		if err != nil || cached != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		c.Set(principalKey, models.Principal{ID: subject, Role: models.Role(role)})
		c.Next()
	}
}

// AdminMiddleware requires an authenticated principal with the admin role.
// It must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if !p.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the authenticated principal set by AuthMiddleware.
// The zero Principal is returned on unauthenticated routes.
func GetPrincipal(c *gin.Context) models.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(models.Principal); ok {
			return p
		}
	}
	return models.Principal{}
}
