package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const jsonOnlyInstruction = "\n\nRespond with valid JSON only. Do not wrap the JSON in markdown code fences and do not add any text before or after it."

var (
	openFence  = regexp.MustCompile("(?i)^\\s*```(?:json)?\\s*")
	closeFence = regexp.MustCompile("\\s*```\\s*$")
)

// StripCodeFences removes a markdown fence the model sometimes wraps JSON in. Fences inside
// the JSON, such as code samples in string values, are kept.
func StripCodeFences(raw string) string {
	cleaned := openFence.ReplaceAllString(raw, "")
	cleaned = closeFence.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// ParseStructured strictly decodes a JSON object from model output. There is no repair step.
func ParseStructured(raw string) (map[string]any, error) {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedAIResponse)
	}

	dec := json.NewDecoder(strings.NewReader(cleaned))

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAIResponse, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after json object", ErrMalformedAIResponse)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: response is not a json object", ErrMalformedAIResponse)
	}

	return out, nil
}
