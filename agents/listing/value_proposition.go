package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

const valuePropositionInstructions = `You are a positioning specialist for e-commerce products. Articulate why the product described below wins against alternatives.

OUTPUT FORMAT: Respond with ONLY a JSON object matching this exact schema:
{
	"headline": "<one-line value statement a shopper reads first>",
	"unique_value": "<one paragraph on what makes this product worth buying>",
	"differentiators": ["<specific advantage over alternatives>"],
	"confidence_score": <0.0-1.0>
}

INSTRUCTIONS:
- The headline must be concrete, not a slogan
- unique_value should connect features to the customer outcome they produce
- List 2-5 differentiators drawn from the competitive advantages
- confidence_score reflects how well the input supports the positioning
- JSON response only; no preamble or dialog`

// ValuePropositionPayload states why the product wins.
type ValuePropositionPayload struct {
	Headline        string   `json:"headline"`
	UniqueValue     string   `json:"unique_value"`
	Differentiators []string `json:"differentiators"`
}

func (ValuePropositionPayload) Kind() agents.Name { return ValueProposition }

type valuePropositionAgent struct {
	base
}

// NewValueProposition builds the agent that articulates the product's
// headline value statement and differentiators.
func NewValueProposition(gen agents.Generator, tables Tables) agents.Agent {
	return &valuePropositionAgent{base{
		name:               ValueProposition,
		description:        "Articulates the headline value statement and differentiators",
		temperature:        0.4,
		fallbackConfidence: 0.5,
		gen:                gen,
		tables:             tables,
	}}
}

func (a *valuePropositionAgent) Process(ctx context.Context, input agents.ProductInput) agents.Result {
	return a.run(ctx, valuePropositionInstructions, input.Describe(), parseValueProposition, func() agents.Payload {
		return valuePropositionFallback(input, a.tables)
	})
}

func parseValueProposition(content string) (agents.Payload, *float64, error) {
	block, err := agents.ExtractJSON(content)
	if err != nil {
		return nil, nil, err
	}

	var decoded struct {
		ValuePropositionPayload
		Confidence *float64 `json:"confidence_score"`
	}
	if err := json.Unmarshal(block, &decoded); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", agents.ErrParse, err)
	}

	if strings.TrimSpace(decoded.Headline) == "" {
		return nil, nil, fmt.Errorf("%w: missing headline", agents.ErrParse)
	}
	if strings.TrimSpace(decoded.UniqueValue) == "" {
		return nil, nil, fmt.Errorf("%w: missing unique_value", agents.ErrParse)
	}

	return decoded.ValuePropositionPayload, decoded.Confidence, nil
}

func valuePropositionFallback(input agents.ProductInput, tables Tables) ValuePropositionPayload {
	headline := input.ValueProposition
	if headline == "" {
		headline = input.Name + " - " + tables.Descriptor(input.Category)
	}

	unique := input.ValueProposition
	if unique == "" {
		unique = fmt.Sprintf("%s delivers dependable %s performance backed by %s.",
			input.Name, strings.ToLower(input.Category), firstNonEmpty(input.Warranty, "standard support"))
	}

	differentiators := input.CompetitiveAdvantages
	if differentiators == nil {
		differentiators = []string{}
	}

	return ValuePropositionPayload{
		Headline:        headline,
		UniqueValue:     unique,
		Differentiators: differentiators,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
