package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDKey    contextKey = "request_id"
	RequestIDHeader            = "X-Request-ID"
)

func NewRequestID() string {
	return uuid.New().String()
}

// RequestIDFromHeader returns the inbound id when it is a UUID, otherwise a
// fresh one.
func RequestIDFromHeader(value string) string {
	if id, err := uuid.Parse(value); err == nil {
		return id.String()
	}
	return NewRequestID()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
