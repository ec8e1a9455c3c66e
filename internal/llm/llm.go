// Package llm defines the minimal chat client surface the REPL depends on,
// plus the Gemini-backed implementation.
package llm

import "context"

// Config holds model selection and sampling parameters.
type Config struct {
	Model       string
	Temperature float64
	TopP        float64
	TopK        int
}

// Client is a synchronous, single-conversation chat capability. Send blocks
// until the model replies or the transport fails.
type Client interface {
	Send(ctx context.Context, message string) (string, error)
}
