// Package advisor turns console state into a short status line via a
// generative-text backend. The console core depends only on the narrow
// Client interface; the Gemini implementation lives beside it.
package advisor

import "context"

// Client is the single capability the console consumes: one prompt in,
// one short status line out.
type Client interface {
	StatusLine(ctx context.Context, prompt string) (string, error)
}

// ConfigError reports a missing or unusable credential at startup.
// It is fatal: the console refuses to run rather than failing on the
// first request.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "advisor config: " + e.Reason
}

// RequestError wraps any failure of an outbound status request:
// network errors, timeouts, malformed or empty responses. The console
// recovers it into a fallback log entry.
type RequestError struct {
	Cause error
}

func (e *RequestError) Error() string {
	return "advisor request: " + e.Cause.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}
