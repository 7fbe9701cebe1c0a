package ctxutil

import (
	"context"
	"testing"
)

func TestUserID(t *testing.T) {
	if _, ok := GetUserID(context.Background()); ok {
		t.Fatal("GetUserID() on empty context should report false")
	}

	ctx := WithUserID(context.Background(), "u-1")
	got, ok := GetUserID(ctx)
	if !ok || got != "u-1" {
		t.Errorf("GetUserID() = %q, %v; want u-1, true", got, ok)
	}

	if _, ok := GetUserID(WithUserID(ctx, "")); ok {
		t.Error("GetUserID() with empty user id should report false")
	}
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(WithUserID(context.Background(), "u-1"), "req-9")
	if got := GetRequestID(ctx); got != "req-9" {
		t.Errorf("GetRequestID() = %q, want req-9", got)
	}
	if got, _ := GetUserID(ctx); got != "u-1" {
		t.Errorf("GetUserID() = %q, want u-1", got)
	}
}
