package tokens

import (
	"unicode/utf8"

	"github.com/randalmurphal/ratekit/provider"
)

// RequestOverheadTokens is the fixed overhead added to every request
// estimate, covering message framing the character count misses.
const RequestOverheadTokens = 5

// EstimateRequest estimates the input tokens for a completion request
// using the default character ratio. The system prompt and every message
// contribute; for structured content only text-typed parts are counted
// (images and other media are estimated as zero).
func EstimateRequest(req provider.Request) int {
	return NewEstimatingCounter().EstimateRequest(req)
}

// EstimateRequest estimates the input tokens for a completion request
// using this counter's ratio, plus RequestOverheadTokens.
func (c *EstimatingCounter) EstimateRequest(req provider.Request) int {
	chars := utf8.RuneCountInString(req.System)
	for _, msg := range req.Messages {
		chars += utf8.RuneCountInString(msg.Text())
	}
	return int(float64(chars)/c.CharsPerToken) + RequestOverheadTokens
}
