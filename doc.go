// Package ratekit provides client-side admission control for LLM APIs.
//
// ratekit keeps aggregate outbound traffic within provider rate limits
// before requests leave the process, instead of reacting to 429s after the
// fact. Limits are enforced along three dimensions: requests per minute
// (shared across all models), input tokens per minute, and output tokens
// per minute (both tracked per model family). Each subpackage can be used
// independently:
//
//   - ratelimit: refilling quota buckets, the admission gate, limit
//     profiles, and a rate-limited transport wrapper
//   - provider: the transport contract (requests, responses, token usage)
//   - model: model-family classification and usage/cost tracking
//   - tokens: heuristic input-token estimation
//   - anthropic: transport implementation for the Anthropic Messages API
//
// # Quick Start
//
// Wrap a transport so every call waits for quota first:
//
//	import (
//	    "github.com/randalmurphal/ratekit/anthropic"
//	    "github.com/randalmurphal/ratekit/provider"
//	    "github.com/randalmurphal/ratekit/ratelimit"
//	)
//
//	inner, _ := anthropic.New(provider.Config{APIKey: key})
//	client := ratelimit.NewClient(inner, ratelimit.DefaultLimits())
//	resp, err := client.Complete(ctx, provider.Request{
//	    Model:     "claude-sonnet-4-20250514",
//	    MaxTokens: 1024,
//	    Messages:  []provider.Message{provider.NewTextMessage(provider.RoleUser, "Hello!")},
//	})
//
// Or drive the gate directly:
//
//	gate := ratelimit.NewGate(ratelimit.DefaultLimits())
//	if gate.Admit(model.FamilySonnet, 1200, 1024, 30*time.Second) {
//	    // quota secured, dispatch the call
//	}
//
// # Design Philosophy
//
//   - Admission is blocking and silent: callers wait until quota accrues
//     or their timeout elapses; there is no "rate limited" error type
//   - Pre-request estimates are treated as authoritative; buckets recover
//     through passive refill, not post-call correction
//   - Each package usable independently
//   - Interfaces for extensibility, concrete types for simplicity
package ratekit
