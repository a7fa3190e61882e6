package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/kazlearn-backend/internal/clients/redis"
	"github.com/yungbote/kazlearn-backend/internal/http/response"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

// LoginLimit throttles login attempts per client IP. Limiter failures let
// the request through.
func LoginLimit(log *logger.Logger, limiter redis.LoginLimiter) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn("login limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			response.RespondServiceError(c, apierr.TooManyRequests("too many login attempts, try again later"))
			return
		}
		c.Next()
	}
}
