package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"vaccine-scheduler/internal/model"
)

const staleAfter = 3 * time.Minute

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// LoginLimiter throttles login attempts per (role, username).
// Stale entries are swept on access; there is no background goroutine.
type LoginLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	r       rate.Limit
	burst   int
	now     func() time.Time
}

func NewLoginLimiter(rps float64, burst int) *LoginLimiter {
	return &LoginLimiter{
		clients: make(map[string]*client),
		r:       rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

func (l *LoginLimiter) Allow(role model.Role, username string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, c := range l.clients {
		if now.Sub(c.seen) > staleAfter {
			delete(l.clients, k)
		}
	}

	key := string(role) + ":" + username
	c, ok := l.clients[key]
	if !ok {
		c = &client{lim: rate.NewLimiter(l.r, l.burst)}
		l.clients[key] = c
	}
	c.seen = now
	return c.lim.AllowN(now, 1)
}

// Reset forgets an account after a successful login.
func (l *LoginLimiter) Reset(role model.Role, username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.clients, string(role)+":"+username)
}
