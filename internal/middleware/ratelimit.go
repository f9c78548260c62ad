package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/JonnyWalker81/audition/backend/internal/apierror"
	"github.com/JonnyWalker81/audition/backend/internal/logger"
)

// RateLimiter provides token bucket rate limiting per client IP
type RateLimiter struct {
	clients map[string]*clientInfo
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	idle    time.Duration // entries unused for this long are dropped
	name    string        // identifier for logging

	stop     chan struct{}
	stopOnce sync.Once
}

type clientInfo struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new rate limiter
// rps: sustained requests per second per client
// burst: maximum requests allowed at once
// name: identifier for logging
func NewRateLimiter(rps float64, burst int, name string) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		clients: make(map[string]*clientInfo),
		rps:     rate.Limit(rps),
		burst:   burst,
		idle:    3 * time.Minute,
		name:    name,
		stop:    make(chan struct{}),
	}

	go rl.cleanup(time.Minute)

	logger.Default().Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Any("rps", rps),
		logger.Int("burst", burst),
	)

	return rl
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// cleanup removes idle entries periodically
func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			cleaned, remaining := rl.evict(now)
			if cleaned > 0 {
				logger.Default().Debug("rate limiter cleanup completed",
					logger.String("name", rl.name),
					logger.Int("cleaned", cleaned),
					logger.Int("remaining", remaining),
				)
			}
		}
	}
}

func (rl *RateLimiter) evict(now time.Time) (cleaned, remaining int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, info := range rl.clients {
		if now.Sub(info.lastSeen) > rl.idle {
			delete(rl.clients, ip)
			cleaned++
		}
	}
	return cleaned, len(rl.clients)
}

// isAllowed reports whether a request from ip may proceed now
func (rl *RateLimiter) isAllowed(ip string) bool {
	rl.mu.Lock()
	now := time.Now()
	info, exists := rl.clients[ip]
	if !exists {
		info = &clientInfo{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = info
	}
	info.lastSeen = now
	limiter := info.limiter
	rl.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// retryAfter is the whole number of seconds until one token is available.
func (rl *RateLimiter) retryAfter() int {
	if rl.rps <= 0 || rl.rps == rate.Inf {
		return 1
	}
	return int(math.Max(1, math.Ceil(1/float64(rl.rps))))
}

// RateLimit returns a middleware handler that limits requests per client IP
// and a stop func that ends the limiter's cleanup goroutine.
// A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) (gin.HandlerFunc, func()) {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }, func() {}
	}
	limiter := NewRateLimiter(rps, burst, "general")
	return rateLimitMiddleware(limiter), limiter.Stop
}

// rateLimitMiddleware creates the actual middleware handler
func rateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !limiter.isAllowed(ip) {
			log := logger.Ctx(c.Request.Context())
			log.Warn("rate limit exceeded",
				logger.String("limiter", limiter.name),
				logger.String("client_ip", ip),
				logger.Int("burst", limiter.burst),
			)

			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.burst))
			c.Header("X-RateLimit-Remaining", "0")
			apierror.AbortWithProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), limiter.retryAfter()))
			return
		}

		c.Next()
	}
}
