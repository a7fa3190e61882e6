package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

// RequestData is attached once per request by the HTTP layer. Auth fills in
// the caller fields on a copy, so the ids set earlier survive.
type RequestData struct {
	RequestID string
	TraceID   string
	ClientIP  string

	UserID      uuid.UUID
	Username    string
	TokenString string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// UserID returns uuid.Nil for anonymous callers.
func UserID(ctx context.Context) uuid.UUID {
	rd := GetRequestData(ctx)
	if rd == nil {
		return uuid.Nil
	}
	return rd.UserID
}

func RequestID(ctx context.Context) string {
	if rd := GetRequestData(ctx); rd != nil {
		return rd.RequestID
	}
	return ""
}

func TraceID(ctx context.Context) string {
	if rd := GetRequestData(ctx); rd != nil {
		return rd.TraceID
	}
	return ""
}
