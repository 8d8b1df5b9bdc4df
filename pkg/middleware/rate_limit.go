package middleware

import (
	"net/http"
	"sync"
	"time"

	"resbook/pkg/logger"
)

// PrincipalRateLimiter applies a sliding-window request limit per
// principal. Unauthenticated requests pass through; PrincipalResolution
// rejects them anyway.
type PrincipalRateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	log      *logger.Logger
	stopCh   chan struct{}
}

func NewPrincipalRateLimiter(limit int, window time.Duration, log *logger.Logger) *PrincipalRateLimiter {
	limiter := &PrincipalRateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		log:      log,
		stopCh:   make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *PrincipalRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for id, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, id)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *PrincipalRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *PrincipalRateLimiter) Allow(principalID string) bool {
	if principalID == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.requests[principalID][:0]
	for _, ts := range rl.requests[principalID] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[principalID] = valid
		return false
	}

	rl.requests[principalID] = append(valid, now)
	return true
}

func PrincipalRateLimit(limiter *PrincipalRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if ok && !limiter.Allow(principal.ID) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", RequestID(r.Context()),
					"principal_id", principal.ID,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
