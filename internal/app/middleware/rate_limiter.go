package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/error/code"
	"bluemoon-http-service/internal/error/response"
)

// TokenBucket is a simple token bucket limiter
type TokenBucket struct {
	rate       float64 // tokens added per second
	capacity   int
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a full bucket
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	now := time.Now()
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: now,
		lastSeen:   now,
	}
}

// Allow takes one token if available
func (tb *TokenBucket) Allow() bool {
	return tb.allowAt(time.Now())
}

func (tb *TokenBucket) allowAt(now time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed > 0 {
		tb.tokens += elapsed * tb.rate
		if tb.tokens > float64(tb.capacity) {
			tb.tokens = float64(tb.capacity)
		}
		tb.lastRefill = now
	}
	tb.lastSeen = now

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

func (tb *TokenBucket) idleSince() time.Time {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastSeen
}

// limiterSet holds one bucket per key
type limiterSet struct {
	mu       sync.Mutex
	limiters map[string]*TokenBucket
}

func newLimiterSet() *limiterSet {
	return &limiterSet{limiters: make(map[string]*TokenBucket)}
}

func (s *limiterSet) get(key string, cfg RateLimiterConfig) *TokenBucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	limiter, ok := s.limiters[key]
	if !ok {
		limiter = NewTokenBucket(cfg.Rate, cfg.Burst)
		s.limiters[key] = limiter
	}
	return limiter
}

// evictIdle drops buckets not used since before cutoff
func (s *limiterSet) evictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key, limiter := range s.limiters {
		if limiter.idleSince().Before(cutoff) {
			delete(s.limiters, key)
			n++
		}
	}
	return n
}

func (s *limiterSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimiterConfig configures RateLimiter
type RateLimiterConfig struct {
	Rate       float64       // requests per second
	Burst      int           // bucket size
	ExpiryTime time.Duration // idle buckets older than this are evicted
	LimitType  string        // "ip", "path", "combined" or "custom"
	KeyFunc    func(*gin.Context) string
}

// DefaultRateLimiterConfig allows 10 requests per second per IP with bursts of 20
var DefaultRateLimiterConfig = RateLimiterConfig{
	Rate:       10,
	Burst:      20,
	ExpiryTime: 1 * time.Hour,
	LimitType:  "ip",
}

// RateLimiter rejects requests over the configured rate with 429
func RateLimiter(config ...RateLimiterConfig) gin.HandlerFunc {
	cfg := DefaultRateLimiterConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRateLimiterConfig.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig.Burst
	}
	if cfg.ExpiryTime <= 0 {
		cfg.ExpiryTime = DefaultRateLimiterConfig.ExpiryTime
	}
	if cfg.LimitType == "" {
		cfg.LimitType = DefaultRateLimiterConfig.LimitType
	}

	limiters := newLimiterSet()
	go func() {
		ticker := time.NewTicker(cfg.ExpiryTime)
		defer ticker.Stop()
		for now := range ticker.C {
			limiters.evictIdle(now.Add(-cfg.ExpiryTime))
		}
	}()

	return func(c *gin.Context) {
		var key string
		switch cfg.LimitType {
		case "path":
			key = c.FullPath()
		case "combined":
			key = c.ClientIP() + ":" + c.FullPath()
		case "custom":
			if cfg.KeyFunc != nil {
				key = cfg.KeyFunc(c)
			} else {
				key = c.ClientIP()
			}
		default:
			key = c.ClientIP()
		}

		if !limiters.get(key, cfg).Allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests, "Too many requests, please try again later", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IPRateLimiter limits per client IP
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:      rate,
		Burst:     burst,
		LimitType: "ip",
	})
}

// CombinedRateLimiter limits per client IP and route
func CombinedRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:      rate,
		Burst:     burst,
		LimitType: "combined",
	})
}
