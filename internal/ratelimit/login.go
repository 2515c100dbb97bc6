package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/replenix/replenix/internal/config"
)

const keyLoginAttempt = "login:attempt:%s:%s"

// LoginLimiter throttles login attempts per username and client
// address. It is disabled when no redis address is configured, in which
// case every attempt is allowed.
type LoginLimiter struct {
	enabled bool
	bucket  *TokenBucket
	cfg     *config.ReplenishmentConfigHolder
}

func NewLoginLimiter(cfg config.Config, holder *config.ReplenishmentConfigHolder) *LoginLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return &LoginLimiter{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})

	return &LoginLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		cfg:     holder,
	}
}

func (l *LoginLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow reports whether a login attempt for the username from the given
// address may proceed. Redis errors fail open so an unreachable limiter
// never locks everyone out.
func (l *LoginLimiter) Allow(ctx context.Context, username, remoteAddr string) bool {
	if !l.Enabled() {
		return true
	}

	rc := l.cfg.Get()
	key := fmt.Sprintf(keyLoginAttempt, strings.ToLower(strings.TrimSpace(username)), strings.TrimSpace(remoteAddr))
	allowed, err := l.bucket.Allow(ctx, key, rc.LoginRatePerMin/60, rc.LoginBurst)
	if err != nil {
		return true
	}
	return allowed
}
