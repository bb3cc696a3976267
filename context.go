package authclient

import "context"

type requestIDContextKey struct{}

// WithRequestID pins the X-Request-ID header for every request issued under
// ctx. Without it the pipeline generates a fresh UUID per request. Useful
// for correlating a client call with server-side logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}
