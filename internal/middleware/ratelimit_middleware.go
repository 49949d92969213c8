package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"decorly-backend-go/internal/config"
)

// limiterIdleTTL is how long a client key may go unseen before its bucket is
// dropped. An idle bucket is full anyway, so dropping it loses nothing.
const limiterIdleTTL = 3 * time.Minute

// limiterSweepInterval is how often the janitor scans for idle buckets.
const limiterSweepInterval = time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client key and evicts buckets that
// have been idle longer than the TTL, so the map cannot grow without bound
// under churning client IPs.
type rateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

func newRateLimiter(appConfig *config.Config) *rateLimiter {
	rps := appConfig.RateLimitRPS
	if rps <= 0 {
		rps = 20
	}
	burst := appConfig.RateLimitBurst
	if burst <= 0 {
		burst = int(rps) * 2
	}
	return &rateLimiter{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: limiterIdleTTL,
	}
}

// allow reports whether the client behind key has budget for one more
// request, stamping the key as recently seen.
func (l *rateLimiter) allow(key string) bool {
	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.entries[key] = entry
	}
	entry.lastSeen = time.Now()
	l.mu.Unlock()
	return entry.limiter.Allow()
}

// sweep drops every bucket not seen since the TTL, measured against now.
func (l *rateLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) > l.idleTTL {
			delete(l.entries, key)
		}
	}
}

// janitor periodically sweeps idle buckets until the stop channel closes.
func (l *rateLimiter) janitor(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			l.sweep(now)
		case <-stop:
			return
		}
	}
}

// size returns the number of live buckets.
func (l *rateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RateLimitMiddleware returns a gin middleware applying a per-client-IP
// token bucket. Requests beyond the bucket get 429. A background janitor
// evicts buckets for clients that have gone idle.
func RateLimitMiddleware(appConfig *config.Config) gin.HandlerFunc {
	limiter := newRateLimiter(appConfig)
	go limiter.janitor(limiterSweepInterval, make(chan struct{}))
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "Too many requests"})
			return
		}
		c.Next()
	}
}
