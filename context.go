package goToken

import "context"

type clientIPContextKey struct{}
type correlationIDContextKey struct{}

// WithClientIP attaches the caller's IP address to ctx. The Engine copies it
// into audit events.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// WithCorrelationID attaches a request correlation identifier to ctx so audit
// events can be joined back to the originating request. The middleware
// package sets this from the X-Correlation-ID header.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDContextKey{}, correlationID)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

func correlationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	correlationID, _ := ctx.Value(correlationIDContextKey{}).(string)
	return correlationID
}
