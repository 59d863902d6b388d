package ai

import "errors"

var (
	// ErrUpstream wraps any failure reported by the model provider.
	ErrUpstream = errors.New("ai provider request failed")

	// ErrMalformedAIResponse is returned when structured output is not a JSON object or is
	// missing required keys.
	ErrMalformedAIResponse = errors.New("malformed ai response")
)
