package model

import (
	"sync"

	"github.com/randalmurphal/ratekit/provider"
)

// Usage accumulates token usage for one family.
type Usage struct {
	InputTokens              int
	OutputTokens             int
	CacheCreationInputTokens int
	CacheReadInputTokens     int
	Requests                 int
}

// Add adds the given usage to this usage.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.CacheCreationInputTokens += other.CacheCreationInputTokens
	u.CacheReadInputTokens += other.CacheReadInputTokens
	u.Requests += other.Requests
}

// BillableInputTokens returns the accumulated input tokens that count
// against input-token limits (regular input plus cache creation; cache
// reads excluded).
func (u Usage) BillableInputTokens() int {
	return u.InputTokens + u.CacheCreationInputTokens
}

// Pricing holds per-million-token pricing for a family.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// FamilyPrices contains current pricing for Claude families (as of 2026).
var FamilyPrices = map[Family]Pricing{
	FamilyOpus:   {InputPerMillion: 15.0, OutputPerMillion: 75.0},
	FamilySonnet: {InputPerMillion: 3.0, OutputPerMillion: 15.0},
	FamilyHaiku:  {InputPerMillion: 1.0, OutputPerMillion: 5.0},
}

// UsageTracker tracks actual token usage and estimated cost per family.
// All methods are safe for concurrent use.
type UsageTracker struct {
	mu     sync.RWMutex
	totals map[Family]Usage
}

// NewUsageTracker creates an empty tracker.
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{
		totals: make(map[Family]Usage),
	}
}

// Record adds one call's reported usage for the given family.
func (t *UsageTracker) Record(family Family, usage provider.TokenUsage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u := t.totals[family]
	u.InputTokens += usage.InputTokens
	u.OutputTokens += usage.OutputTokens
	u.CacheCreationInputTokens += usage.CacheCreationInputTokens
	u.CacheReadInputTokens += usage.CacheReadInputTokens
	u.Requests++
	t.totals[family] = u
}

// Usage returns the accumulated usage for a family.
func (t *UsageTracker) Usage(family Family) Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totals[family]
}

// Summary returns a copy of all per-family totals.
func (t *UsageTracker) Summary() map[Family]Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[Family]Usage, len(t.totals))
	for k, v := range t.totals {
		result[k] = v
	}
	return result
}

// TotalUsage returns aggregated usage across all families.
func (t *UsageTracker) TotalUsage() Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total Usage
	for _, u := range t.totals {
		total.Add(u)
	}
	return total
}

// EstimatedCostUSD returns the estimated spend for a family based on
// FamilyPrices. Cache reads are priced as regular input here; exact cache
// pricing varies by provider and is not modeled.
func (t *UsageTracker) EstimatedCostUSD(family Family) float64 {
	t.mu.RLock()
	u := t.totals[family]
	t.mu.RUnlock()

	p, ok := FamilyPrices[family]
	if !ok {
		return 0
	}
	in := float64(u.InputTokens+u.CacheCreationInputTokens+u.CacheReadInputTokens) / 1e6
	out := float64(u.OutputTokens) / 1e6
	return in*p.InputPerMillion + out*p.OutputPerMillion
}

// TotalCostUSD returns the estimated spend across all families.
func (t *UsageTracker) TotalCostUSD() float64 {
	t.mu.RLock()
	families := make([]Family, 0, len(t.totals))
	for f := range t.totals {
		families = append(families, f)
	}
	t.mu.RUnlock()

	var total float64
	for _, f := range families {
		total += t.EstimatedCostUSD(f)
	}
	return total
}
