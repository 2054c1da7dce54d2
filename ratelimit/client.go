package ratelimit

import (
	"context"
	"time"

	"github.com/randalmurphal/ratekit/model"
	"github.com/randalmurphal/ratekit/provider"
	"github.com/randalmurphal/ratekit/tokens"
)

// Client wraps a transport so every completion call is admitted by a Gate
// before it is dispatched. It implements provider.Client and is safe for
// concurrent use.
//
// On Complete, the Client classifies the request's model into a family,
// estimates input tokens from the message content, and blocks until the
// gate admits the call. The transport call itself happens outside any
// lock, after all quotas are secured. Actual usage from the response is
// recorded in the usage tracker; the buckets are not corrected (see
// Gate.Reconcile).
type Client struct {
	inner   provider.Client
	gate    *Gate
	counter *tokens.EstimatingCounter
	tracker *model.UsageTracker
	timeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAdmissionTimeout bounds how long Complete waits for quota before
// failing with ErrAdmissionTimeout. Default: wait indefinitely (the
// request context's deadline, if any, still applies).
func WithAdmissionTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithCounter replaces the token estimator.
func WithCounter(counter *tokens.EstimatingCounter) ClientOption {
	return func(c *Client) {
		if counter != nil {
			c.counter = counter
		}
	}
}

// WithTracker replaces the usage tracker, e.g. to share one tracker
// across several clients.
func WithTracker(tracker *model.UsageTracker) ClientOption {
	return func(c *Client) {
		if tracker != nil {
			c.tracker = tracker
		}
	}
}

// WithGate replaces the gate built from the limits profile. Pass
// NewDisabledGate() to turn admission control off entirely.
func WithGate(gate *Gate) ClientOption {
	return func(c *Client) {
		if gate != nil {
			c.gate = gate
		}
	}
}

// NewClient wraps inner with admission control derived from limits.
func NewClient(inner provider.Client, limits Limits, opts ...ClientOption) *Client {
	c := &Client{
		inner:   inner,
		gate:    NewGate(limits),
		counter: tokens.NewEstimatingCounter(),
		tracker: model.NewUsageTracker(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete admits the request, dispatches it on the inner transport, and
// records the reported usage. Admission failures return
// ErrAdmissionTimeout; transport errors propagate unchanged with no retry.
func (c *Client) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	family := model.FamilyFor(req.Model)
	estimated := c.counter.EstimateRequest(req)

	if !c.gate.Admit(family, estimated, req.MaxTokens, c.admissionTimeout(ctx)) {
		return nil, ErrAdmissionTimeout
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := c.inner.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	c.tracker.Record(family, resp.Usage)
	c.gate.Reconcile(family, resp.Usage)
	return resp, nil
}

// admissionTimeout caps the configured timeout at the context deadline,
// so a request never waits for quota past its own deadline.
func (c *Client) admissionTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); timeout <= 0 || until < timeout {
			timeout = until
		}
	}
	return timeout
}

// Provider returns the inner transport's provider name.
func (c *Client) Provider() string {
	return c.inner.Provider()
}

// Close closes the inner transport.
func (c *Client) Close() error {
	return c.inner.Close()
}

// Gate returns the admission gate, e.g. for inspecting remaining quota.
func (c *Client) Gate() *Gate {
	return c.gate
}

// Tracker returns the usage tracker accumulating actual per-family usage.
func (c *Client) Tracker() *model.UsageTracker {
	return c.tracker
}
