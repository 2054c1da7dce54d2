// Package provider defines the transport contract for text-generation APIs.
//
// A provider is an opaque synchronous call: it accepts a structured request
// (model identifier, role-tagged messages, optional system prompt, output
// token ceiling) and returns a response carrying the usage counters the
// admission layer needs. Implementations live in their own packages (e.g.
// anthropic) and register themselves via Register.
//
// # Usage
//
// Create a client through the registry:
//
//	client, err := provider.New("anthropic", provider.Config{
//	    APIKey: os.Getenv("ANTHROPIC_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
// The ratelimit package wraps any Client so calls block until quota is
// available; see ratelimit.NewClient.
package provider

import "context"

// Client is the unified interface for text-generation transports.
// Implementations must be safe for concurrent use.
type Client interface {
	// Complete sends a request and returns the full response.
	// The context controls cancellation and timeouts.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Provider returns the provider name (e.g. "anthropic").
	Provider() string

	// Close releases any resources held by the client.
	Close() error
}
