package agents

import (
	"context"

	"github.com/JaimeStill/listing-lab/internal/inference"
)

// Generator is the generation boundary agents call through. *inference.Client
// satisfies it; tests substitute scripted implementations.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts inference.Options) (*inference.Generation, error)
}
