package domain

import "context"

type dispatchIDKey struct{}

// WithDispatchID returns a context carrying the correlation id of one dispatch attempt.
func WithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, dispatchIDKey{}, id)
}

// DispatchID returns the correlation id stored in ctx, or an empty string.
func DispatchID(ctx context.Context) string {
	id, _ := ctx.Value(dispatchIDKey{}).(string)
	return id
}
