// Package tokens provides heuristic input-token estimation for requests.
//
// Estimation is based on the rule-of-thumb that approximately 4 characters
// equals 1 token for English text. This is deliberately an approximation:
// the admission layer only needs pre-request estimates that are close
// enough, and a model-specific tokenizer would add cost and a heavyweight
// dependency for little gain.
//
// # Counter
//
// The Counter interface provides text-level counting:
//
//	counter := tokens.NewEstimatingCounter()
//	count := counter.Count("Hello, world!")   // ~3 tokens
//
// # Request estimation
//
// EstimateRequest totals the system prompt and every message's text
// content (for structured content, only text-typed parts), then adds a
// small fixed overhead:
//
//	estimated := tokens.EstimateRequest(req)
//
// The result is what the admission gate acquires from the input-token
// quota before a call is dispatched.
package tokens
