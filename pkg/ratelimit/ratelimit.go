// Package ratelimit 基于 Redis 的分布式限流,保护计算密集的估值接口。
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// Rule 单条限流规则: 每秒速率与突发额度。
type Rule struct {
	PerSecond int
	Burst     int
}

// Decision 一次限流判定。
type Decision struct {
	Allowed    bool
	Remaining  int
	ResetAfter time.Duration
	RetryAfter time.Duration
}

// Limiter 限流器接口。
type Limiter interface {
	Allow(ctx context.Context, key string, rule Rule) (*Decision, error)
}

// RedisLimiter 基于 redis_rate (GCRA) 的限流器实现。
type RedisLimiter struct {
	limiter *redis_rate.Limiter
	prefix  string
}

// NewRedisLimiter 创建限流器。keyPrefix 用于隔离不同服务的限流键。
func NewRedisLimiter(rdb redis.UniversalClient, keyPrefix string) *RedisLimiter {
	if keyPrefix == "" {
		keyPrefix = "ratelimit"
	}
	return &RedisLimiter{
		limiter: redis_rate.NewLimiter(rdb),
		prefix:  keyPrefix,
	}
}

// Allow 判定 key 在规则下是否放行。
func (l *RedisLimiter) Allow(ctx context.Context, key string, rule Rule) (*Decision, error) {
	res, err := l.limiter.Allow(ctx, l.prefix+":"+key, redis_rate.Limit{
		Rate:   rule.PerSecond,
		Period: time.Second,
		Burst:  rule.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	return &Decision{
		Allowed:    res.Allowed > 0,
		Remaining:  res.Remaining,
		ResetAfter: res.ResetAfter,
		RetryAfter: res.RetryAfter,
	}, nil
}
