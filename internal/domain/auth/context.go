package auth

import "context"

type sessionIDKey struct{}

// WithSessionID binds a session ID to ctx so services can resolve the
// current browser session without reaching into HTTP request state.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionIDFrom returns the session ID bound to ctx, if any.
func SessionIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(string)
	return id, ok && id != ""
}
