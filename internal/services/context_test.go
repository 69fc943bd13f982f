package services_test

import (
	"context"
	"testing"

	"capcorpus/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-1")
	ctx = services.WithVideoID(ctx, "abc123")
	ctx = services.WithChannel(ctx, "Some Channel")
	ctx = services.WithStage(ctx, "label")
	ctx = services.WithRequestID(ctx, "req-123")

	checks := []struct {
		name string
		get  func(context.Context) (string, bool)
		want string
	}{
		{"run", services.RunIDFromContext, "run-1"},
		{"video", services.VideoIDFromContext, "abc123"},
		{"channel", services.ChannelFromContext, "Some Channel"},
		{"stage", services.StageFromContext, "label"},
		{"request", services.RequestIDFromContext, "req-123"},
	}
	for _, c := range checks {
		if got, ok := c.get(ctx); !ok || got != c.want {
			t.Fatalf("%s: got %q %v, want %q", c.name, got, ok, c.want)
		}
	}
}

func TestStageBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
}
