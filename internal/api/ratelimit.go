package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig tunes the per-IP request limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	CleanupInterval   time.Duration
}

// DefaultRateLimitConfig keeps the sustained rate low: the analysis
// endpoints decode whole captures per request.
var DefaultRateLimitConfig = RateLimitConfig{
	RequestsPerSecond: 5,
	Burst:             10,
	CleanupInterval:   5 * time.Minute,
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands each client IP its own token bucket. Buckets idle
// past two cleanup intervals are swept so one-off clients do not pile
// up in memory.
type IPRateLimiter struct {
	limiters sync.Map // ip -> *limiterEntry
	config   RateLimitConfig
	stopChan chan struct{}
	stopOnce sync.Once

	allowedCount  uint64 // atomic
	rejectedCount uint64 // atomic
}

// NewIPRateLimiter starts the limiter and its sweep timer. Call Stop
// when done with it.
func NewIPRateLimiter(cfg RateLimitConfig) *IPRateLimiter {
	rl := &IPRateLimiter{
		config:   cfg,
		stopChan: make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Stop ends the sweep timer. Safe to call more than once.
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopChan)
	})
}

// Allow reports whether a request from ip fits its bucket right now.
func (rl *IPRateLimiter) Allow(ip string) bool {
	if rl.limiterFor(ip).Allow() {
		atomic.AddUint64(&rl.allowedCount, 1)
		return true
	}
	atomic.AddUint64(&rl.rejectedCount, 1)
	return false
}

// Middleware rejects over-limit requests with 429 before they reach a
// handler.
func (rl *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(GetClientIP(r)) {
			RecordConnectionRejected("rate_limit")
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetStats returns lifetime allowed and rejected counts.
func (rl *IPRateLimiter) GetStats() map[string]uint64 {
	return map[string]uint64{
		"allowed":  atomic.LoadUint64(&rl.allowedCount),
		"rejected": atomic.LoadUint64(&rl.rejectedCount),
	}
}

func (rl *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	now := time.Now()
	if v, ok := rl.limiters.Load(ip); ok {
		e := v.(*limiterEntry)
		e.lastSeen = now
		return e.limiter
	}
	e := &limiterEntry{
		limiter:  rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.Burst),
		lastSeen: now,
	}
	actual, _ := rl.limiters.LoadOrStore(ip, e)
	return actual.(*limiterEntry).limiter
}

func (rl *IPRateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stopChan:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-2 * rl.config.CleanupInterval)
			rl.limiters.Range(func(key, value interface{}) bool {
				if value.(*limiterEntry).lastSeen.Before(cutoff) {
					rl.limiters.Delete(key)
				}
				return true
			})
		}
	}
}

// GetClientIP resolves the client address for limiting: first hop of
// X-Forwarded-For, then X-Real-IP, then the socket address. The headers
// are spoofable unless a trusted proxy sets them; with no proxy the
// socket address is the one that matters.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// WebSocketRateLimiter caps concurrent WebSocket connections per IP.
// Unlike the request limiter this counts open connections, so every
// successful Allow needs a matching Release.
type WebSocketRateLimiter struct {
	connections sync.Map // ip -> *int32
	maxPerIP    int

	rejectedCount uint64 // atomic
}

// NewWebSocketRateLimiter creates a connection counter with the given
// per-IP cap.
func NewWebSocketRateLimiter(maxPerIP int) *WebSocketRateLimiter {
	return &WebSocketRateLimiter{maxPerIP: maxPerIP}
}

// Allow claims a connection slot for ip, failing when the cap is
// reached.
func (wrl *WebSocketRateLimiter) Allow(ip string) bool {
	v, _ := wrl.connections.LoadOrStore(ip, new(int32))
	counter := v.(*int32)
	for {
		current := atomic.LoadInt32(counter)
		if int(current) >= wrl.maxPerIP {
			atomic.AddUint64(&wrl.rejectedCount, 1)
			return false
		}
		if atomic.CompareAndSwapInt32(counter, current, current+1) {
			return true
		}
	}
}

// Release returns ip's slot.
func (wrl *WebSocketRateLimiter) Release(ip string) {
	if v, ok := wrl.connections.Load(ip); ok {
		atomic.AddInt32(v.(*int32), -1)
	}
}

// GetConnectionCount returns how many connections ip holds right now.
func (wrl *WebSocketRateLimiter) GetConnectionCount(ip string) int {
	if v, ok := wrl.connections.Load(ip); ok {
		return int(atomic.LoadInt32(v.(*int32)))
	}
	return 0
}

// GetStats returns the lifetime rejected-connection count.
func (wrl *WebSocketRateLimiter) GetStats() map[string]uint64 {
	return map[string]uint64{
		"rejected": atomic.LoadUint64(&wrl.rejectedCount),
	}
}

// AllowedOrigins lists the origins CORS and the WebSocket handshake
// accept. The dashboard runs on the same machine as the service, so
// only loopback is trusted.
var AllowedOrigins = []string{
	"http://localhost",
	"http://127.0.0.1",
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost:8080",
}

// IsAllowedOrigin reports whether origin may talk to the service.
// Loopback passes with any port; the check requires the port separator
// so "localhost.evil.example" cannot ride the prefix.
func IsAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
		return true
	}
	for _, allowed := range AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}
