package ai

import "context"

// Provider is the interface a model transport must satisfy. It covers
// exactly what the evaluator needs: send a request, read the reply.
type Provider interface {
	// SendMessage sends a chat request and returns the completed response.
	// Returns an error if the call fails, the context is cancelled, or the
	// response cannot be decoded.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)
}

// ProviderFunc adapts a plain function to the Provider interface, the same
// way http.HandlerFunc adapts handlers. Useful for tests and inline
// transports.
type ProviderFunc func(ctx context.Context, request ChatRequest) (*ChatResponse, error)

// SendMessage calls f.
func (f ProviderFunc) SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error) {
	return f(ctx, request)
}
