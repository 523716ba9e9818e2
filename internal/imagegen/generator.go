// Package imagegen produces the manifest icon through AI image APIs. The
// default client speaks the together.ai-style /v1/images/generations
// protocol; a Gemini-backed generator is available as an alternative.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Icon dimensions in pixels, fixed by the manifest contract.
const (
	IconWidth  = 208
	IconHeight = 208
)

// Generator produces a single PNG image for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// StatusError reports a non-2xx image API response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("images API status %d: %s", e.StatusCode, e.Message)
}

// IsRateLimited reports whether err looks like an API rate limit: a 429
// status or a rate-limit phrase in the message.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "429")
}
