package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestAnonymousContext(t *testing.T) {
	ctx := context.Background()
	if got := UserID(ctx); got != uuid.Nil {
		t.Fatalf("UserID: want=%v got=%v", uuid.Nil, got)
	}
	if RequestID(ctx) != "" || TraceID(ctx) != "" {
		t.Fatalf("ids on empty context: request=%q trace=%q", RequestID(ctx), TraceID(ctx))
	}
}

func TestRequestDataAccessors(t *testing.T) {
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{
		RequestID: "r-1",
		TraceID:   "t-1",
		UserID:    id,
		Username:  "aigerim",
	})
	if got := UserID(ctx); got != id {
		t.Fatalf("UserID: want=%v got=%v", id, got)
	}
	if got := RequestID(ctx); got != "r-1" {
		t.Fatalf("RequestID: want=r-1 got=%q", got)
	}
	if got := TraceID(ctx); got != "t-1" {
		t.Fatalf("TraceID: want=t-1 got=%q", got)
	}
}
