package orchestrator

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/listing-lab/internal/inference"
)

func TestLoggingGeneratorCapturesRawOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	inner := generatorFunc(func(ctx context.Context, prompt string, opts inference.Options) (*inference.Generation, error) {
		return &inference.Generation{Content: strings.Repeat("x", 64), Model: "scripted"}, nil
	})
	gen := NewLoggingGenerator(inner, logger, 16)

	result, err := gen.Generate(context.Background(), "prompt", inference.Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(result.Content) != 64 {
		t.Errorf("content length = %d, decorator must not mutate the completion", len(result.Content))
	}

	logged := buf.String()
	if !strings.Contains(logged, "raw completion") {
		t.Fatalf("log output = %q, want the capture entry", logged)
	}
	if !strings.Contains(logged, "truncated") {
		t.Error("capture beyond the limit must be marked truncated")
	}
	if strings.Contains(logged, strings.Repeat("x", 32)) {
		t.Error("captured content must respect the byte limit")
	}
}

func TestTruncateRaw(t *testing.T) {
	tests := []struct {
		name    string
		content string
		limit   int64
		want    string
	}{
		{"under limit", "short", 16, "short"},
		{"at limit", "0123456789abcdef", 16, "0123456789abcdef"},
		{"over limit", "0123456789abcdef!", 16, "0123456789abcdef... (truncated)"},
		{"no limit", "anything goes", 0, "anything goes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateRaw(tt.content, tt.limit); got != tt.want {
				t.Errorf("truncateRaw() = %q, want %q", got, tt.want)
			}
		})
	}
}
