package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var errRateLimited = errs.New("rate limit exceeded")

type bucket struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// RateLimiter keeps one token bucket per client address and one per user.
// Idle buckets are swept lazily, at most once per IdleTTL.
type RateLimiter struct {
	buckets   sync.Map // map[string]*bucket
	lastSweep atomic.Int64
	cfg       config.RateLimitConfig
	clock     clock.Clock
}

func NewRateLimiter(cfg config.RateLimitConfig, clk clock.Clock) *RateLimiter {
	l := &RateLimiter{cfg: cfg, clock: clk}
	l.lastSweep.Store(clk.Now().UnixNano())
	return l
}

// ByIP runs before authentication so anonymous and forged requests are throttled too.
func (l *RateLimiter) ByIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow("ip:"+c.ClientIP(), l.cfg.IPRPS, l.cfg.IPBurst) {
			httperr.Abort(c, http.StatusTooManyRequests, errRateLimited, "Too many requests")
			return
		}
		c.Next()
	}
}

// ByUser runs after authentication. Requests without a user id pass through.
func (l *RateLimiter) ByUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if ok && !l.allow("user:"+strconv.FormatInt(userID, 10), l.cfg.RPS, l.cfg.Burst) {
			httperr.Abort(c, http.StatusTooManyRequests, errRateLimited, "Too many requests")
			return
		}
		c.Next()
	}
}

// Len reports how many buckets are currently held.
func (l *RateLimiter) Len() int {
	n := 0
	l.buckets.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// allow treats a non-positive rps as unlimited.
func (l *RateLimiter) allow(key string, rps float64, burst int) bool {
	if rps <= 0 {
		return true
	}
	now := l.clock.Now()
	l.evictIdle(now)

	b := l.bucket(key, rps, burst)
	b.lastSeen.Store(now.UnixNano())
	return b.lim.AllowN(now, 1)
}

func (l *RateLimiter) bucket(key string, rps float64, burst int) *bucket {
	if v, ok := l.buckets.Load(key); ok {
		return v.(*bucket)
	}
	if burst <= 0 {
		burst = 1
	}
	v, _ := l.buckets.LoadOrStore(key, &bucket{lim: rate.NewLimiter(rate.Limit(rps), burst)})
	return v.(*bucket)
}

func (l *RateLimiter) evictIdle(now time.Time) {
	ttl := l.cfg.IdleTTL
	if ttl <= 0 {
		return
	}
	last := l.lastSweep.Load()
	if now.UnixNano()-last < int64(ttl) || !l.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	cutoff := now.Add(-ttl).UnixNano()
	l.buckets.Range(func(k, v any) bool {
		if v.(*bucket).lastSeen.Load() < cutoff {
			l.buckets.Delete(k)
		}
		return true
	})
}
