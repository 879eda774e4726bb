package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the middleware chain.
const (
	ctxUserID    = "userId"
	ctxUsername  = "username"
	ctxRequestID = "requestId"
)

// Auth failure messages.
const (
	msgTokenMissing = "Token is missing"
	msgTokenInvalid = "Token is invalid or expired"
)

// authMiddleware requires a valid `Authorization: Bearer <token>` header
// and stores the token-derived identity in the request context.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgTokenMissing})
		return
	}

	claims, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgTokenInvalid})
		return
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	c.Next()
}

// requestLogger tags every request with an ID and logs its outcome.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	reqID := uuid.NewString()
	c.Set(ctxRequestID, reqID)
	c.Writer.Header().Set("X-Request-ID", reqID)

	c.Next()

	if h.log != nil {
		h.log.Infow("http_request",
			"id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
