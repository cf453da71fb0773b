// Package ratelimit is a process-local fixed-window request counter.
//
// State lives in memory and is not shared between instances, so the
// effective limit is per process. It resets on restart.
package ratelimit

import (
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

// UnknownClient is the shared bucket for requests without proxy headers.
const UnknownClient = "unknown"

// Budget scopes.
const (
	ScopeAuth   = "auth"
	ScopeReview = "review"
)

// sweepChance is the probability that a Check also sweeps expired records.
const sweepChance = 0.01

type record struct {
	count   int
	resetAt time.Time
}

type Result struct {
	Allowed bool
	// ResetAt is when the current window ends.
	ResetAt time.Time
}

// RetryAfter is the whole number of seconds until ResetAt, at least 1.
func (r Result) RetryAfter(now time.Time) int {
	d := r.ResetAt.Sub(now)
	if d <= 0 {
		return 1
	}

	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}

	return secs
}

type Limiter struct {
	mu      sync.Mutex
	records map[string]*record
	now     func() time.Time
	roll    func() float64
}

type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// WithSweepRoll replaces the random source deciding when to sweep.
func WithSweepRoll(roll func() float64) Option {
	return func(l *Limiter) {
		l.roll = roll
	}
}

func New(opts ...Option) *Limiter {
	l := &Limiter{
		records: make(map[string]*record),
		now:     time.Now,
		roll:    rand.Float64,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Check counts one request for id against max requests per window.
func (l *Limiter) Check(id string, max int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if l.roll() < sweepChance {
		l.sweepLocked(now)
	}

	rec, ok := l.records[id]
	if !ok || !now.Before(rec.resetAt) {
		rec = &record{count: 1, resetAt: now.Add(window)}
		l.records[id] = rec

		return Result{Allowed: true, ResetAt: rec.resetAt}
	}

	if rec.count >= max {
		return Result{Allowed: false, ResetAt: rec.resetAt}
	}

	rec.count++

	return Result{Allowed: true, ResetAt: rec.resetAt}
}

// Peek reports what Check would answer for id without counting a request.
func (l *Limiter) Peek(id string, max int) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	rec, ok := l.records[id]
	if !ok || !now.Before(rec.resetAt) {
		return Result{Allowed: true}
	}

	return Result{Allowed: rec.count < max, ResetAt: rec.resetAt}
}

// Sweep drops every record whose window has ended.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked(l.now())
}

func (l *Limiter) sweepLocked(now time.Time) {
	for id, rec := range l.records {
		if !now.Before(rec.resetAt) {
			delete(l.records, id)
		}
	}
}

// Now is the limiter's clock.
func (l *Limiter) Now() time.Time {
	return l.now()
}

// Len is the number of tracked identifiers.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.records)
}

// ClientID picks the first X-Forwarded-For entry, then X-Real-IP, then
// UnknownClient.
func ClientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return real
	}

	return UnknownClient
}

// Budget is a named allowance of Max requests per Window for each client.
// Budgets sharing a Limiter never share records unless their scopes match.
type Budget struct {
	limiter *Limiter
	scope   string
	max     int
	window  time.Duration
}

func NewBudget(l *Limiter, scope string, max int, window time.Duration) Budget {
	return Budget{limiter: l, scope: scope, max: max, window: window}
}

func (b Budget) key(r *http.Request) string {
	return b.scope + ":" + ClientID(r)
}

// Take counts one request from the client behind r.
func (b Budget) Take(r *http.Request) Result {
	return b.limiter.Check(b.key(r), b.max, b.window)
}

// Peek reports whether the client behind r has requests left.
func (b Budget) Peek(r *http.Request) Result {
	return b.limiter.Peek(b.key(r), b.max)
}

// RetryAfter is the wait in seconds before res.ResetAt.
func (b Budget) RetryAfter(res Result) int {
	return res.RetryAfter(b.limiter.Now())
}
