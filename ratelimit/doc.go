// Package ratelimit implements client-side admission control for LLM calls.
//
// Provider rate limits apply along three independent dimensions: requests
// per minute (shared across all models), input tokens per minute, and
// output tokens per minute (both per model family). This package models
// each dimension as a refilling quota bucket and composes them into a
// single blocking admission decision.
//
// # Bucket
//
// Bucket is a thread-safe refilling counter. It starts full, refills
// continuously at a fixed per-second rate, and supports non-blocking and
// blocking acquisition:
//
//	b, _ := ratelimit.NewBucket(100, 10) // capacity 100, 10 units/sec
//	b.TryTake(30)                        // non-blocking
//	b.Take(50, 2*time.Second)            // block up to 2s for 50 units
//
// # Gate
//
// Gate owns one shared request bucket plus an input/output bucket pair per
// model family, derived from a per-minute Limits profile:
//
//	gate := ratelimit.NewGate(ratelimit.DefaultLimits())
//	if gate.Admit(model.FamilySonnet, estimatedInput, maxTokens, 0) {
//	    // all three quotas secured; dispatch the call
//	}
//
// Admission acquires sequentially (request, then input, then output) and
// never rolls back: quota consumed for an earlier dimension stays consumed
// while a later one is awaited. There is no fairness guarantee among
// concurrent waiters.
//
// # Client
//
// Client wraps any provider.Client so every Complete call is admitted
// before it is dispatched:
//
//	client := ratelimit.NewClient(inner, ratelimit.DefaultLimits())
//
// Pre-request estimates are treated as authoritative: after the call the
// gate records actual usage for observability but performs no corrective
// action on the buckets, which recover through passive refill alone.
package ratelimit
