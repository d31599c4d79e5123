package listing

import (
	"context"
	"errors"
	"time"

	"github.com/JaimeStill/listing-lab/internal/agents"
	"github.com/JaimeStill/listing-lab/internal/inference"
)

// base carries what every listing agent shares: identity, sampling
// temperature, the fallback confidence constant, the generation boundary,
// and the injected lookup tables.
type base struct {
	name               agents.Name
	description        string
	temperature        float64
	fallbackConfidence float64
	gen                agents.Generator
	tables             Tables
}

func (b base) Name() agents.Name {
	return b.name
}

func (b base) Description() string {
	return b.description
}

// run is the shared agent flow: one generation attempt, one parse attempt,
// and the deterministic fallback on any failure. It never returns an error.
func (b base) run(
	ctx context.Context,
	instructions, productContext string,
	parse func(content string) (agents.Payload, *float64, error),
	fallback func() agents.Payload,
) agents.Result {
	started := time.Now()

	content, err := b.generate(ctx, instructions, productContext)
	if err != nil {
		return b.partial(fallback(), started, failureReason(err))
	}

	payload, reported, err := parse(content)
	if err != nil {
		return b.partial(fallback(), started, failureReason(err))
	}

	return b.success(payload, reported, started)
}

// generate runs a single structured generation pass: the agent's instruction
// template followed by the rendered product context. Retrying is the
// caller's decision, never the agent's.
func (b base) generate(ctx context.Context, instructions, productContext string) (string, error) {
	temperature := b.temperature

	gen, err := b.gen.Generate(ctx, instructions+"\n\n"+productContext, inference.Options{
		Temperature: &temperature,
		Structured:  true,
	})
	if err != nil {
		return "", err
	}

	return gen.Content, nil
}

// success assembles a model-backed result, screening the reported confidence.
func (b base) success(payload agents.Payload, reported *float64, started time.Time) agents.Result {
	confidence, trusted := agents.NormalizeConfidence(reported, b.fallbackConfidence)

	var notes []string
	if !trusted {
		notes = append(notes, "model confidence missing or out of range; using default")
	}

	return agents.Result{
		Agent:      b.name,
		Status:     agents.StatusSuccess,
		Payload:    payload,
		Confidence: confidence,
		Duration:   time.Since(started),
		Notes:      notes,
	}
}

// partial assembles a fallback result with the reason recorded as a note.
func (b base) partial(payload agents.Payload, started time.Time, reason string) agents.Result {
	return agents.Result{
		Agent:      b.name,
		Status:     agents.StatusPartial,
		Payload:    payload,
		Confidence: b.fallbackConfidence,
		Duration:   time.Since(started),
		Notes:      []string{"fallback: " + reason},
	}
}

// failureReason condenses a generation or parse error into a fallback note.
// Parse errors keep their detail; transport errors reduce to the sentinel
// text so persisted notes stay readable.
func failureReason(err error) string {
	switch {
	case errors.Is(err, inference.ErrTimeout):
		return inference.ErrTimeout.Error()
	case errors.Is(err, inference.ErrConnection):
		return inference.ErrConnection.Error()
	default:
		return err.Error()
	}
}
