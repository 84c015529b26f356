// Package breaker implements a process-local circuit breaker
// guarding calls to a single upstream
package breaker

import (
	"sync"
	"time"

	perr "boardstore/internal/platform/errors"
)

// State is the breaker state machine position
type State uint8

const (
	// Closed passes calls through and counts consecutive failures
	Closed State = iota
	// Open rejects calls until the cooldown elapses
	Open
	// HalfOpen admits a single probe call
	HalfOpen
)

// String returns the lowercase state name for logs
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config tunes the breaker
type Config struct {
	// Threshold is the consecutive failure count that trips the breaker
	Threshold int
	// Cooldown is the initial open period
	Cooldown time.Duration
	// Ceiling caps the doubling cooldown
	Ceiling time.Duration
}

// Defaults used for zero config fields
const (
	DefaultThreshold = 5
	DefaultCooldown  = 30 * time.Second
	DefaultCeiling   = 5 * time.Minute
)

// Breaker guards one upstream. Safe for concurrent use
type Breaker struct {
	mu sync.Mutex

	threshold int
	cooldown  time.Duration
	ceiling   time.Duration

	state    State
	failures int
	openedAt time.Time
	waitFor  time.Duration // current cooldown, doubles on repeated trips
	probing  bool          // a half-open probe is in flight

	now func() time.Time // seam for tests
}

// New builds a breaker, filling zero config fields with defaults
func New(cfg Config) *Breaker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	if cfg.Ceiling <= 0 {
		cfg.Ceiling = DefaultCeiling
	}
	return &Breaker{
		threshold: cfg.Threshold,
		cooldown:  cfg.Cooldown,
		ceiling:   cfg.Ceiling,
		waitFor:   cfg.Cooldown,
		now:       time.Now,
	}
}

// State reports the current state, advancing Open to HalfOpen when due
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance()
	return b.state
}

// Allow reports whether a call may proceed right now.
// When the breaker is open it returns false plus the remaining cooldown.
// In half-open only the first caller gets the probe slot
func (b *Breaker) Allow() (ok bool, retryAfter time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance()

	switch b.state {
	case Closed:
		return true, 0
	case HalfOpen:
		if b.probing {
			return false, b.remaining()
		}
		b.probing = true
		return true, 0
	default: // Open
		return false, b.remaining()
	}
}

// Success records a successful call and closes the breaker
func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = Closed
	b.failures = 0
	b.probing = false
	b.waitFor = b.cooldown // reset the doubling
}

// Failure records a failed call. In half-open it re-opens immediately
// with a doubled cooldown; in closed it trips once the threshold is hit
func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance()

	switch b.state {
	case HalfOpen:
		b.probing = false
		b.trip(true)
	case Closed:
		b.failures++
		if b.failures >= b.threshold {
			b.trip(false)
		}
	}
	// failures while Open come from calls admitted before the trip; ignore
}

// Err builds the rejection error carrying the remaining cooldown
func (b *Breaker) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance()
	return perr.CircuitOpenf(b.remaining(), "upstream circuit open")
}

// Do runs fn under the breaker. Rejected calls return a circuit-open
// error without invoking fn. fn errors count as failures only when
// countAs reports them as such
func (b *Breaker) Do(fn func() error, countAs func(error) bool) error {
	ok, retryAfter := b.Allow()
	if !ok {
		return perr.CircuitOpenf(retryAfter, "upstream circuit open")
	}
	err := fn()
	if err == nil {
		b.Success()
		return nil
	}
	if countAs == nil || countAs(err) {
		b.Failure()
	} else {
		// a non-counting error still releases the half-open probe slot
		b.release()
	}
	return err
}

// release frees the half-open probe slot without changing state
func (b *Breaker) release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false
}

// trip opens the breaker; doubled grows the cooldown toward the ceiling
func (b *Breaker) trip(doubled bool) {
	if doubled {
		b.waitFor *= 2
		if b.waitFor > b.ceiling {
			b.waitFor = b.ceiling
		}
	}
	b.state = Open
	b.openedAt = b.now()
	b.failures = 0
}

// advance moves Open to HalfOpen once the cooldown has elapsed.
// Callers must hold the mutex
func (b *Breaker) advance() {
	if b.state == Open && b.now().Sub(b.openedAt) >= b.waitFor {
		b.state = HalfOpen
		b.probing = false
	}
}

// remaining is the time left on the current cooldown, never negative.
// Callers must hold the mutex
func (b *Breaker) remaining() time.Duration {
	switch b.state {
	case Closed:
		return 0
	case HalfOpen:
		// probe in flight; hint callers to retry shortly
		return time.Second
	}
	left := b.waitFor - b.now().Sub(b.openedAt)
	if left < 0 {
		left = 0
	}
	return left
}
