package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterStore holds a map of keys (client IPs or booking ids) to their rate
// limiters.
type limiterStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
}

func newLimiterStore(perMinute int) *limiterStore {
	// A zero or negative config value would divide by zero below.
	if perMinute <= 0 {
		perMinute = 30
	}
	return &limiterStore{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

// getLimiter returns the rate limiter for a given key, creating one if it
// doesn't exist.
func (s *limiterStore) getLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[key] = limiter
	}
	return limiter
}

var ipLimiters = newLimiterStore(200)

// RateLimitMiddleware limits requests per client IP address.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ip := getClientIP(c)
		if !ipLimiters.getLimiter(ip).Allow() {
			logger.Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}

// TrackingThrottleMiddleware caps location reports per booking so a chatty
// runner device cannot flood the route log.
func TrackingThrottleMiddleware(updatesPerMin int) gin.HandlerFunc {
	store := newLimiterStore(updatesPerMin)
	return func(c *gin.Context) {
		bookingID := c.Param("id")
		if bookingID != "" && !store.getLimiter(bookingID).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many tracking updates for this booking."})
			return
		}
		c.Next()
	}
}
