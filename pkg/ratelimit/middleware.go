package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// PerClient 按路由与客户端 IP 限流的 gin 中间件。
// 限流器为空或故障时放行,不让 Redis 故障放大成接口不可用。
func PerClient(limiter Limiter, rule Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || rule.PerSecond <= 0 {
			c.Next()
			return
		}

		key := c.FullPath() + ":" + c.ClientIP()
		dec, err := limiter.Allow(c.Request.Context(), key, rule)
		if err != nil {
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(dec.ResetAfter/time.Second), 10))

		if !dec.Allowed {
			c.Header("Retry-After", strconv.FormatInt(int64(dec.RetryAfter/time.Second), 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too Many Requests",
				"retry_after": dec.RetryAfter.String(),
			})
			return
		}

		c.Next()
	}
}
