package model

import (
	"fmt"
	"time"
)

// TransportError wraps a network or HTTP-level failure reaching a source or
// the scoring oracle. Strict adapters and the scoring client propagate it;
// lenient adapters swallow it and degrade to an empty result.
type TransportError struct {
	Source     string        // which source or endpoint failed
	StatusCode int           // zero when the request never completed
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError wraps a malformed feed payload. Only the designated RSS feed
// propagates it (signals systemic feed breakage); other adapters degrade
// to an empty result.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: malformed payload: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports an oracle response that failed the expected JSON
// shape, the 1-10 score range, or the non-empty reason rule. Raw preserves
// the original response text for diagnostics.
type ValidationError struct {
	Raw string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid oracle response: %v (raw: %q)", e.Err, e.Raw)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
