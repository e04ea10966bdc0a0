package auth

import "context"

type contextKey struct{}

// Context carries the acting user resolved from the session cookie. A zero
// UserID means the request is anonymous and all owner-scoped reads see an
// empty scope.
type Context struct {
	UserID    int64
	SessionID int64
}

func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(contextKey{}).(Context)
	return ac, ok
}

// UserID returns the acting user's id, or 0 for anonymous requests.
func UserID(ctx context.Context) int64 {
	ac, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return ac.UserID
}

// SessionID returns the active session's id, or 0 if there is none.
func SessionID(ctx context.Context) int64 {
	ac, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return ac.SessionID
}
