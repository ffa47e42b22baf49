package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// LimiterCleanupInterval is how often idle client limiters are dropped
	LimiterCleanupInterval = 30 * time.Second

	// LimiterIdleTimeout is how long a client may stay silent before its limiter is dropped
	LimiterIdleTimeout = 3 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out a token bucket per client key (the client IP)
type RateLimiter struct {
	rpm     int
	mu      sync.Mutex
	clients map[string]*clientLimiter
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewRateLimiter creates a new rate limiter allowing rpm requests per minute
// per client, with bursts up to rpm. A non-positive rpm disables limiting.
func NewRateLimiter(rpm int) *RateLimiter {
	return &RateLimiter{
		rpm:     rpm,
		clients: make(map[string]*clientLimiter),
		stopCh:  make(chan struct{}),
	}
}

// Limit returns the configured requests per minute
func (l *RateLimiter) Limit() int {
	return l.rpm
}

// Allow consumes one request for key. When denied it returns how long to wait.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	if l.rpm <= 0 {
		return true, 0
	}
	now := time.Now()

	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(float64(l.rpm)/60), l.rpm)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	r := c.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Remaining reports the whole tokens left in key's bucket
func (l *RateLimiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.clients[key]
	if !ok {
		return l.rpm
	}
	if n := int(c.limiter.Tokens()); n > 0 {
		return n
	}
	return 0
}

// Start begins the background cleanup of idle clients
func (l *RateLimiter) Start(ctx context.Context) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ticker := time.NewTicker(LimiterCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-l.stopCh:
				return
			case <-ticker.C:
				l.cleanup(time.Now())
			}
		}
	}()
}

// Stop gracefully stops the cleanup goroutine
func (l *RateLimiter) Stop() {
	close(l.stopCh)
	l.wg.Wait()
}

func (l *RateLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > LimiterIdleTimeout {
			delete(l.clients, key)
		}
	}
}
