package ratelimit

import (
	"time"

	"github.com/randalmurphal/ratekit/model"
	"github.com/randalmurphal/ratekit/provider"
)

// secondsPerMinute converts per-minute limits to per-second refill rates.
const secondsPerMinute = 60.0

// Gate composes quota buckets into a single admission decision.
//
// A Gate owns one shared request bucket plus, per model family, an
// input-token and an output-token bucket. Bucket capacities equal the
// per-minute limits; refill rates are the limits divided by 60. The bucket
// set is fixed at construction and lives for the Gate's lifetime.
//
// The Gate holds no lock of its own across the three-step acquisition:
// admissions for different requests interleave freely except where they
// contend on the same bucket's short critical section.
type Gate struct {
	enabled  bool
	requests *Bucket
	input    map[model.Family]*Bucket
	output   map[model.Family]*Bucket
}

// NewGate builds a Gate from a per-minute limits profile. Non-positive
// limits leave that dimension ungated: a zero RequestsPerMinute means no
// shared request bucket, and a family with a zero token limit gets no
// bucket for that dimension.
func NewGate(limits Limits) *Gate {
	g := &Gate{
		enabled: true,
		input:   make(map[model.Family]*Bucket),
		output:  make(map[model.Family]*Bucket),
	}
	if b := bucketForLimit(limits.RequestsPerMinute); b != nil {
		g.requests = b
	}
	for family, ml := range limits.Models {
		if b := bucketForLimit(ml.InputTokensPerMinute); b != nil {
			g.input[family] = b
		}
		if b := bucketForLimit(ml.OutputTokensPerMinute); b != nil {
			g.output[family] = b
		}
	}
	return g
}

// NewDisabledGate returns a pass-through Gate: every Admit call returns
// true immediately and no buckets are instantiated.
func NewDisabledGate() *Gate {
	return &Gate{}
}

// bucketForLimit builds a bucket for a per-minute limit, or nil if the
// limit is non-positive.
func bucketForLimit(perMinute float64) *Bucket {
	if perMinute <= 0 {
		return nil
	}
	b, err := NewBucket(perMinute, perMinute/secondsPerMinute)
	if err != nil {
		return nil
	}
	return b
}

// Enabled reports whether this Gate performs any admission control.
func (g *Gate) Enabled() bool {
	return g.enabled
}

// Limited reports whether the given family has token-dimension buckets.
// Unlimited families clear admission on the shared request bucket alone.
func (g *Gate) Limited(family model.Family) bool {
	if !g.enabled {
		return false
	}
	_, in := g.input[family]
	_, out := g.output[family]
	return in || out
}

// Admit blocks until the request clears all applicable quota dimensions:
// 1 unit from the shared request bucket, estimatedInput units from the
// family's input bucket, and maxOutput units from the family's output
// bucket, acquired in that order. maxOutput is the caller's full output
// ceiling, reserved pessimistically since actual generation is unknown
// before the call completes.
//
// A timeout <= 0 waits indefinitely; otherwise the timeout spans the
// whole sequence. Returns false if the deadline expires at any step.
// Quota consumed by earlier steps is NOT refunded on failure or while a
// later step waits: the counters recover only through passive refill.
func (g *Gate) Admit(family model.Family, estimatedInput, maxOutput int, timeout time.Duration) bool {
	if !g.enabled {
		return true
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	if g.requests != nil {
		if !g.requests.Take(1, remaining(deadline)) {
			return false
		}
	}
	if b, ok := g.input[family]; ok {
		if !b.Take(float64(estimatedInput), remaining(deadline)) {
			return false
		}
	}
	if b, ok := g.output[family]; ok {
		if !b.Take(float64(maxOutput), remaining(deadline)) {
			return false
		}
	}
	return true
}

// remaining converts a deadline to a Take timeout. A zero deadline means
// unbounded; an expired deadline yields a tiny positive timeout so Take
// still makes one final check before failing.
func remaining(deadline time.Time) time.Duration {
	if deadline.IsZero() {
		return 0
	}
	r := time.Until(deadline)
	if r <= 0 {
		return time.Nanosecond
	}
	return r
}

// Reconcile accepts the actual usage reported for a completed call.
//
// Admission consumed the pre-request estimate and the full output ceiling.
// If actual usage differs, the buckets could be corrected here; they
// deliberately are not. The estimates are treated as close enough, and the
// buckets recover through passive refill. Reconcile exists so the
// billable-input distinction (cache creation counts, cache reads do not;
// see provider.TokenUsage.BillableInputTokens) stays on the call path for
// any future correction logic.
func (g *Gate) Reconcile(family model.Family, usage provider.TokenUsage) {
	// Intentionally empty.
}

// RequestsAvailable returns the shared request bucket's current quantity,
// or -1 if the request dimension is ungated.
func (g *Gate) RequestsAvailable() float64 {
	if g.requests == nil {
		return -1
	}
	return g.requests.Available()
}

// InputAvailable returns the family's input bucket quantity, or -1 if
// that dimension is ungated for the family.
func (g *Gate) InputAvailable(family model.Family) float64 {
	b, ok := g.input[family]
	if !ok {
		return -1
	}
	return b.Available()
}

// OutputAvailable returns the family's output bucket quantity, or -1 if
// that dimension is ungated for the family.
func (g *Gate) OutputAvailable(family model.Family) float64 {
	b, ok := g.output[family]
	if !ok {
		return -1
	}
	return b.Available()
}
