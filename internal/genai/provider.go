// Package genai wraps the hosted generative text/vision provider.
package genai

import "context"

// Request is the provider-boundary request: a prompt plus an optional inline
// binary payload for multimodal (vision) calls.
type Request struct {
	Prompt string
	Inline *InlineData
}

// InlineData carries a base64 payload with its MIME type.
type InlineData struct {
	MIMEType string
	Data     string
}

// Response is the provider-boundary reply.
type Response struct {
	Text string
}

// Provider defines the interface for dispatching a generation request to the
// hosted model. Implementations return provider errors with their original
// human-readable message; classification happens in the Client.
type Provider interface {
	Generate(ctx context.Context, apiKey string, req *Request) (*Response, error)
}
