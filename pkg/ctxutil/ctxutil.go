package ctxutil

import "context"

type ctxKey string

const (
	requestIDKey  ctxKey = "request_id"
	maintainerKey ctxKey = "maintainer"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithMaintainer marks the context as authenticated maintainer tooling
// (the external verb-editor), identified by its token subject.
func WithMaintainer(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, maintainerKey, subject)
}

// MaintainerFromCtx returns the maintainer subject and whether the
// context carries maintainer authentication.
func MaintainerFromCtx(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(maintainerKey).(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}
