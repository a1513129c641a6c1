package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subledger/internal/shared/logger"
	"github.com/orris-inc/subledger/internal/shared/utils"
)

// CallLimiter decides whether key may make another call now.
type CallLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimitMiddleware throttles callers by identity, falling back to the
// client IP for unauthenticated requests. A nil limiter lets everything
// through.
type RateLimitMiddleware struct {
	limiter CallLimiter
	logger  logger.Interface
}

func NewRateLimitMiddleware(limiter CallLimiter, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
	}
}

// Limit must run after AuthMiddleware.RequireAuth to key on identity.
func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || m.limiter == nil {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if identity, ok := utils.GetIdentity(c); ok {
			key = "id:" + identity.String()
		}

		allowed, err := m.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Redis outage must not take the ledger down with it.
			m.logger.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
