package breaker

import (
	"errors"
	"testing"
	"time"

	perr "boardstore/internal/platform/errors"
)

// clock is a manual clock for driving the breaker deterministically
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(cfg Config) (*Breaker, *clock) {
	b := New(cfg)
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	b.now = c.now
	return b, c
}

func TestDefaults(t *testing.T) {
	b := New(Config{})
	if b.threshold != DefaultThreshold || b.cooldown != DefaultCooldown || b.ceiling != DefaultCeiling {
		t.Fatalf("defaults not applied: %d %v %v", b.threshold, b.cooldown, b.ceiling)
	}
	if b.State() != Closed {
		t.Fatal("new breaker must start closed")
	}
}

func TestTripsAfterConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 3, Cooldown: 30 * time.Second})

	for i := 0; i < 2; i++ {
		b.Failure()
		if b.State() != Closed {
			t.Fatalf("breaker tripped too early after %d failures", i+1)
		}
	}
	b.Failure()
	if b.State() != Open {
		t.Fatal("breaker must open at the threshold")
	}

	ok, retryAfter := b.Allow()
	if ok {
		t.Fatal("open breaker must reject calls")
	}
	if retryAfter <= 0 || retryAfter > 30*time.Second {
		t.Fatalf("bad retry hint: %v", retryAfter)
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 3})
	b.Failure()
	b.Failure()
	b.Success()
	b.Failure()
	b.Failure()
	if b.State() != Closed {
		t.Fatal("non-consecutive failures must not trip the breaker")
	}
}

func TestHalfOpenSingleProbe(t *testing.T) {
	b, c := newTestBreaker(Config{Threshold: 1, Cooldown: 30 * time.Second})
	b.Failure()
	if b.State() != Open {
		t.Fatal("want open")
	}

	c.advance(30 * time.Second)
	if b.State() != HalfOpen {
		t.Fatal("cooldown elapsed, want half-open")
	}

	ok, _ := b.Allow()
	if !ok {
		t.Fatal("first caller must get the probe slot")
	}
	ok, retryAfter := b.Allow()
	if ok {
		t.Fatal("second caller must be rejected while the probe is in flight")
	}
	if retryAfter <= 0 {
		t.Fatalf("rejected caller needs a retry hint, got %v", retryAfter)
	}

	b.Success()
	if b.State() != Closed {
		t.Fatal("probe success must close the breaker")
	}
	if ok, _ := b.Allow(); !ok {
		t.Fatal("closed breaker must allow calls")
	}
}

func TestProbeFailureDoublesCooldown(t *testing.T) {
	b, c := newTestBreaker(Config{Threshold: 1, Cooldown: 30 * time.Second, Ceiling: 5 * time.Minute})
	b.Failure() // open, 30s

	c.advance(30 * time.Second)
	if ok, _ := b.Allow(); !ok {
		t.Fatal("probe should be admitted")
	}
	b.Failure() // reopen, 60s

	c.advance(30 * time.Second)
	if b.State() != Open {
		t.Fatal("30s into a 60s cooldown must still be open")
	}
	c.advance(30 * time.Second)
	if b.State() != HalfOpen {
		t.Fatal("60s cooldown elapsed, want half-open")
	}
}

func TestCooldownCeiling(t *testing.T) {
	b, c := newTestBreaker(Config{Threshold: 1, Cooldown: 2 * time.Minute, Ceiling: 5 * time.Minute})
	b.Failure()

	// fail probes repeatedly: 2m -> 4m -> 5m (capped) -> 5m
	for i := 0; i < 4; i++ {
		c.advance(b.waitFor)
		if ok, _ := b.Allow(); !ok {
			t.Fatalf("probe %d should be admitted", i)
		}
		b.Failure()
	}
	if b.waitFor != 5*time.Minute {
		t.Fatalf("cooldown must cap at the ceiling, got %v", b.waitFor)
	}
}

func TestSuccessResetsDoubledCooldown(t *testing.T) {
	b, c := newTestBreaker(Config{Threshold: 1, Cooldown: 30 * time.Second})
	b.Failure()
	c.advance(30 * time.Second)
	_, _ = b.Allow()
	b.Failure() // doubled to 60s
	c.advance(60 * time.Second)
	_, _ = b.Allow()
	b.Success()

	if b.waitFor != 30*time.Second {
		t.Fatalf("success must reset the cooldown, got %v", b.waitFor)
	}
}

func TestDoWrapsCalls(t *testing.T) {
	b, c := newTestBreaker(Config{Threshold: 2, Cooldown: 30 * time.Second})

	boom := errors.New("boom")
	countAll := func(error) bool { return true }

	if err := b.Do(func() error { return nil }, countAll); err != nil {
		t.Fatalf("success call: %v", err)
	}
	_ = b.Do(func() error { return boom }, countAll)
	_ = b.Do(func() error { return boom }, countAll)

	// now open: fn must not run
	ran := false
	err := b.Do(func() error { ran = true; return nil }, countAll)
	if ran {
		t.Fatal("open breaker must not invoke fn")
	}
	if perr.CodeOf(err) != perr.ErrorCodeCircuitOpen {
		t.Fatalf("want circuit open error, got %v", err)
	}
	if perr.RetryAfterOf(err) <= 0 {
		t.Fatalf("circuit open error must carry retry-after, got %v", err)
	}

	c.advance(30 * time.Second)
	if err := b.Do(func() error { return nil }, countAll); err != nil {
		t.Fatalf("probe should pass through: %v", err)
	}
	if b.State() != Closed {
		t.Fatal("probe success must close")
	}
}

func TestDoNonCountingErrorReleasesProbe(t *testing.T) {
	b, c := newTestBreaker(Config{Threshold: 1, Cooldown: 30 * time.Second})
	b.Failure()
	c.advance(30 * time.Second)

	clientErr := errors.New("bad request")
	_ = b.Do(func() error { return clientErr }, func(error) bool { return false })

	// probe slot released, state still half-open, next caller may probe
	if b.State() != HalfOpen {
		t.Fatalf("non-counting error must not reopen, got %v", b.State())
	}
	if ok, _ := b.Allow(); !ok {
		t.Fatal("probe slot should be free again")
	}
}

func TestStateString(t *testing.T) {
	if Closed.String() != "closed" || Open.String() != "open" || HalfOpen.String() != "half-open" {
		t.Fatal("state names changed")
	}
}
