package orchestrator

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/listing-lab/internal/agents"
	"github.com/JaimeStill/listing-lab/internal/inference"
)

// NewLoggingGenerator wraps a Generator so every raw completion is captured
// at debug level, truncated to captureLimit bytes. Agents only record why a
// response was unusable; this decorator is where the offending raw text is
// retained for diagnosis.
func NewLoggingGenerator(gen agents.Generator, logger *slog.Logger, captureLimit int64) agents.Generator {
	return &loggingGenerator{
		gen:     gen,
		logger:  logger.With("system", "generation"),
		capture: captureLimit,
	}
}

type loggingGenerator struct {
	gen     agents.Generator
	logger  *slog.Logger
	capture int64
}

func (g *loggingGenerator) Generate(ctx context.Context, prompt string, opts inference.Options) (*inference.Generation, error) {
	generation, err := g.gen.Generate(ctx, prompt, opts)
	if err != nil {
		g.logger.Debug("generation failed", "error", err)
		return nil, err
	}

	g.logger.Debug("raw completion",
		"model", generation.Model,
		"bytes", len(generation.Content),
		"content", truncateRaw(generation.Content, g.capture))

	return generation, nil
}

func truncateRaw(content string, limit int64) string {
	if limit <= 0 || int64(len(content)) <= limit {
		return content
	}
	return content[:limit] + "... (truncated)"
}
