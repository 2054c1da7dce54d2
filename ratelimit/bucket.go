package ratelimit

import (
	"math"
	"sync"
	"time"
)

// maxPollInterval bounds how long a blocked Take sleeps between checks,
// so quota freed by concurrent consumers is observed promptly.
const maxPollInterval = 100 * time.Millisecond

// Bucket is a thread-safe refilling quota counter.
//
// The bucket starts at full capacity and refills continuously at a fixed
// per-second rate, computed lazily on access rather than by a background
// timer. Quantities are float64 throughout: per-minute limits divided down
// to per-second rates are fractional, and fractional refill must not be
// truncated away.
type Bucket struct {
	capacity   float64   // maximum holdable quantity
	refillRate float64   // quantity added per second
	available  float64   // current quantity, 0 <= available <= capacity
	lastRefill time.Time // last time available was recomputed
	mu         sync.Mutex
}

// NewBucket creates a bucket holding capacity units, refilling at
// refillRate units per second. The bucket starts full.
func NewBucket(capacity, refillRate float64) (*Bucket, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if refillRate <= 0 {
		return nil, ErrInvalidRefillRate
	}
	return &Bucket{
		capacity:   capacity,
		refillRate: refillRate,
		available:  capacity,
		lastRefill: time.Now(),
	}, nil
}

// refill recomputes available from elapsed time, capped at capacity.
// Caller must hold b.mu.
func (b *Bucket) refill() {
	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.available = math.Min(b.capacity, b.available+elapsed*b.refillRate)
	b.lastRefill = now
}

// Capacity returns the maximum quantity the bucket can hold.
func (b *Bucket) Capacity() float64 {
	return b.capacity
}

// RefillRate returns the refill rate in units per second.
func (b *Bucket) RefillRate() float64 {
	return b.refillRate
}

// Fits reports whether a request for n units can ever be satisfied.
// Take with n > capacity and no timeout blocks forever; callers that
// cannot guarantee n <= capacity should check Fits first.
func (b *Bucket) Fits(n float64) bool {
	return n <= b.capacity
}

// Available returns the current quantity after lazy refill.
// This is a snapshot and may change immediately under concurrent access.
func (b *Bucket) Available() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()
	return b.available
}

// TryTake attempts to consume n units without blocking.
// Returns true and decrements the bucket if n units are available,
// false with no side effect otherwise.
func (b *Bucket) TryTake(n float64) bool {
	if n <= 0 {
		return true
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()
	if b.available >= n {
		b.available -= n
		return true
	}
	return false
}

// Take consumes n units, blocking until they are available or timeout
// elapses. A timeout <= 0 waits indefinitely. Returns true if the units
// were consumed, false if the timeout expired first (no side effect).
//
// Taking 0 units always succeeds immediately. Taking n > capacity with no
// timeout never completes; see Fits.
//
// While waiting, Take sleeps outside the bucket's lock for the estimated
// refill time of the deficit, capped at maxPollInterval and the remaining
// timeout, then re-checks. Waiters race on each re-check: there is no
// FIFO queue, and a large request can be overtaken indefinitely by
// smaller concurrent ones.
func (b *Bucket) Take(n float64, timeout time.Duration) bool {
	if n <= 0 {
		return true
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		b.mu.Lock()
		b.refill()
		if b.available >= n {
			b.available -= n
			b.mu.Unlock()
			return true
		}
		deficit := n - b.available
		b.mu.Unlock()

		wait := time.Duration(deficit / b.refillRate * float64(time.Second))
		if !deadline.IsZero() {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return false
			}
			if wait > remaining {
				wait = remaining
			}
		}
		if wait > maxPollInterval {
			wait = maxPollInterval
		}
		time.Sleep(wait)
	}
}
