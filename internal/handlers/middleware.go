package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// userIdCtxKey is where the middleware stores the verified identity. Handlers
// must read the identity from here, never from raw headers.
const userIdCtxKey = "userId"

// userIdMiddleware verifies the bearer token and attaches the user id to the
// request context. It keeps no state between requests.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	// The "Bearer " prefix is optional; a bare token is also accepted.
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(userIdCtxKey, userId)
	c.Next()
}

// ownerID extracts the authenticated user id set by userIdMiddleware.
func ownerID(c *gin.Context) (string, bool) {
	v, ok := c.Get(userIdCtxKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
