// Package rate tracks a token-bucket limiter per client id and forgets
// clients that have been quiet for a while.
package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Limiter struct {
	burst   int
	rps     float64
	expiry  time.Duration
	clients map[string]*client
	mu      sync.Mutex
}

type client struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func NewLimiter(burst int, expiry time.Duration, rps float64) *Limiter {
	lm := &Limiter{
		burst:   burst,
		rps:     rps,
		expiry:  expiry,
		clients: make(map[string]*client),
	}
	go lm.sweep()
	return lm
}

// Check reports whether id may proceed, registering it on first sight.
func (l *Limiter) Check(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[id]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.clients[id] = cl
	}

	cl.lastAccess = time.Now()
	return cl.limiter.Allow()
}

func (l *Limiter) sweep() {
	for range time.Tick(time.Minute) {
		l.mu.Lock()
		for id, cl := range l.clients {
			if time.Since(cl.lastAccess) > l.expiry {
				delete(l.clients, id)
			}
		}
		l.mu.Unlock()
	}
}

// Every converts an inter-request interval to the requests-per-second
// value NewLimiter expects.
func Every(interval time.Duration) float64 {
	return float64(rate.Every(interval))
}
