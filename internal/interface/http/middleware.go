package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yanqian/ai-wardrobe/internal/infra/config"
)

// errorHandlingMiddleware renders the last error recorded by a handler.
func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		message := httpErr.Message
		if message == "" {
			message = http.StatusText(httpErr.Status)
		}

		level := slog.LevelWarn
		if httpErr.Status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			"code", httpErr.Code,
			"status", httpErr.Status,
			"route", c.FullPath(),
			"error", httpErr.Err,
		)

		c.JSON(httpErr.Status, gin.H{
			"error": gin.H{
				"code":    httpErr.Code,
				"message": message,
			},
		})
	}
}

// rateLimitMiddleware applies a token bucket per client IP.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiters := newClientLimiters(cfg, 5*time.Minute)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		reservation := limiters.reserve(ip)
		if reservation.ok {
			c.Next()
			return
		}
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(reservation.wait.Seconds()))))
		logger.Warn("rate limit exceeded", "ip", ip, "route", c.FullPath())
		abortWithError(c, NewHTTPError(http.StatusTooManyRequests, codeRateLimited, "too many requests", nil))
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type clientLimiters struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time
	swept   time.Time
}

type admission struct {
	ok   bool
	wait time.Duration
}

func newClientLimiters(cfg config.RateLimitConfig, idle time.Duration) *clientLimiters {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &clientLimiters{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(float64(cfg.RequestsPerMinute) / 60),
		burst:   burst,
		idle:    idle,
		now:     time.Now,
	}
}

func (l *clientLimiters) reserve(ip string) admission {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	client, ok := l.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = now
	l.sweepLocked(now)

	if client.limiter.AllowN(now, 1) {
		return admission{ok: true}
	}
	r := client.limiter.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	if wait < time.Second {
		wait = time.Second
	}
	return admission{wait: wait}
}

// sweepLocked drops idle clients at most once per idle window.
func (l *clientLimiters) sweepLocked(now time.Time) {
	if now.Sub(l.swept) < l.idle {
		return
	}
	l.swept = now
	for ip, client := range l.clients {
		if now.Sub(client.lastSeen) > l.idle {
			delete(l.clients, ip)
		}
	}
}
