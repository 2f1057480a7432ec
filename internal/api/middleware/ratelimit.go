package middleware

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/connectomedia/contact-api/internal/api/response"
	"github.com/connectomedia/contact-api/internal/logger"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// Janitor defaults
const (
	DefaultCleanupInterval = time.Minute
	DefaultMaxIdle         = 10 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter manages rate limiters per IP address
type IPRateLimiter struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     r,
		burst:    b,
		now:      time.Now,
	}
}

// GetLimiter returns the rate limiter for the given IP
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	entry, exists := i.limiters[ip]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(i.rate, i.burst)}
		i.limiters[ip] = entry
	}
	entry.lastSeen = i.now()

	return entry.limiter
}

// Len reports how many IPs are tracked
func (i *IPRateLimiter) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.limiters)
}

// CleanupOldEntries drops limiters not used within maxIdle and returns how many were removed
func (i *IPRateLimiter) CleanupOldEntries(maxIdle time.Duration) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	cutoff := i.now().Add(-maxIdle)
	removed := 0
	for ip, entry := range i.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(i.limiters, ip)
			removed++
		}
	}
	return removed
}

// StartJanitor evicts idle limiters every interval until ctx is done
func (i *IPRateLimiter) StartJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				i.CleanupOldEntries(maxIdle)
			}
		}
	}()
}

// retryAfter is the whole number of seconds until one more token is available
func (i *IPRateLimiter) retryAfter() string {
	if i.rate <= 0 {
		return "60"
	}
	return strconv.Itoa(int(math.Ceil(1 / float64(i.rate))))
}

// RateLimiter returns rate limiting middleware backed by limiter
func RateLimiter(limiter *IPRateLimiter, sec *logger.SecurityLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !limiter.GetLimiter(ip).Allow() {
				sec.RateLimitExceeded(ip, c.Request().URL.Path)

				c.Response().Header().Set("Retry-After", limiter.retryAfter())
				return response.TooManyRequests(c, "Too many requests. Please try again later.")
			}

			return next(c)
		}
	}
}
