// Package model provides model-family classification and usage tracking.
//
// Rate limits for token dimensions are published per model family, not per
// exact model version, so the admission layer needs a cheap way to map a
// free-text model identifier like "claude-sonnet-4-20250514" to its family
// key. FamilyFor does that with ordered case-insensitive substring matching
// and a designated default; it never fails and never blocks.
//
// UsageTracker accumulates the actual token usage reported by the provider
// per family, including cache creation/read counts, and can estimate cost
// from a per-million-token pricing table.
package model
