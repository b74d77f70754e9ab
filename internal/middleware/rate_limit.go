package middleware

import (
	"errors"
	"net/http"

	"stockward/internal/admission"
	"stockward/internal/apierror"

	"github.com/gin-gonic/gin"
)

// RateLimit gates requests through the shared admission limiter, keyed by
// client IP. The limiter is injected so the same instance protects both the
// HTTP layer and the ledger behind it.
func RateLimit(limiter *admission.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := limiter.Admit(c.ClientIP()); err != nil {
			if errors.Is(err, admission.ErrTooManyRequests) {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many requests"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Internal server error"))
			return
		}
		c.Next()
	}
}
