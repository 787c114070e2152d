package middleware

import (
	"context"
	"encoding/json"
	"loan-schedule/internal/api/handler/dto"
	"loan-schedule/internal/config"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 10 * time.Minute
	limiterIdleTTL         = 30 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// RateLimiterMiddleware applies a token bucket per client IP.
type RateLimiterMiddleware struct {
	visitors sync.Map
	cfg      config.RateLimitConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewRateLimiterMiddleware starts a sweeper that drops idle buckets until ctx
// is cancelled.
func NewRateLimiterMiddleware(ctx context.Context, cfg config.RateLimitConfig, logger *slog.Logger) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		cfg:    cfg,
		logger: logger.With("component", "RateLimiter"),
		now:    time.Now,
	}

	if cfg.Enabled {
		go rl.cleanupLoop(ctx)
	}
	return rl
}

func (rl *RateLimiterMiddleware) getLimiter(ip string) *rate.Limiter {
	v, ok := rl.visitors.Load(ip)
	if !ok {
		fresh := &visitor{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst)}
		v, _ = rl.visitors.LoadOrStore(ip, fresh)
	}
	vis := v.(*visitor)
	vis.lastSeen.Store(rl.now().UnixNano())
	return vis.limiter
}

func (rl *RateLimiterMiddleware) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiterMiddleware) cleanup() {
	cutoff := rl.now().Add(-limiterIdleTTL).UnixNano()
	rl.visitors.Range(func(key, value interface{}) bool {
		if value.(*visitor).lastSeen.Load() < cutoff {
			rl.visitors.Delete(key)
		}
		return true
	})
}

func (rl *RateLimiterMiddleware) extractIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	xRealIP := r.Header.Get("X-Real-IP")
	if xRealIP != "" {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.extractIP(r)

		if !rl.getLimiter(ip).Allow() {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(dto.ErrorResponse{
				Error: dto.ErrorDetail{Code: "rate_limited", Message: "Rate limit exceeded"},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
