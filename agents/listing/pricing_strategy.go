package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

const pricingStrategyInstructions = `You are a pricing strategist for e-commerce marketplaces. Recommend how to position the price of the product described below.

OUTPUT FORMAT: Respond with ONLY a JSON object matching this exact schema:
{
	"pricing_notes": "<actionable pricing guidance for the listing owner>",
	"price_position": "<budget|mid-range|premium>",
	"justification": "<why this position fits the product and its advantages>",
	"confidence_score": <0.0-1.0>
}

INSTRUCTIONS:
- Anchor the guidance to the target price when one is provided
- price_position must be exactly one of budget, mid-range, or premium
- Justify the position with the competitive advantages, not generic claims
- confidence_score reflects how much pricing context the input provides
- JSON response only; no preamble or dialog`

// PricingStrategyPayload is the pricing guidance for the listing.
type PricingStrategyPayload struct {
	PricingNotes  string `json:"pricing_notes"`
	PricePosition string `json:"price_position"`
	Justification string `json:"justification"`
}

func (PricingStrategyPayload) Kind() agents.Name { return PricingStrategy }

type pricingStrategyAgent struct {
	base
}

// NewPricingStrategy builds the agent that owns the listing's pricing notes.
func NewPricingStrategy(gen agents.Generator, tables Tables) agents.Agent {
	return &pricingStrategyAgent{base{
		name:               PricingStrategy,
		description:        "Recommends price positioning and writes the pricing notes",
		temperature:        0.5,
		fallbackConfidence: 0.5,
		gen:                gen,
		tables:             tables,
	}}
}

func (a *pricingStrategyAgent) Process(ctx context.Context, input agents.ProductInput) agents.Result {
	return a.run(ctx, pricingStrategyInstructions, input.Describe(), parsePricingStrategy, func() agents.Payload {
		return pricingStrategyFallback(input)
	})
}

func parsePricingStrategy(content string) (agents.Payload, *float64, error) {
	block, err := agents.ExtractJSON(content)
	if err != nil {
		return nil, nil, err
	}

	var decoded struct {
		PricingStrategyPayload
		Confidence *float64 `json:"confidence_score"`
	}
	if err := json.Unmarshal(block, &decoded); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", agents.ErrParse, err)
	}

	if strings.TrimSpace(decoded.PricingNotes) == "" {
		return nil, nil, fmt.Errorf("%w: missing pricing_notes", agents.ErrParse)
	}

	return decoded.PricingStrategyPayload, decoded.Confidence, nil
}

func pricingStrategyFallback(input agents.ProductInput) PricingStrategyPayload {
	notes := input.PricingNotes
	if notes == "" && input.TargetPrice > 0 {
		notes = fmt.Sprintf("Launch at the %.2f target price and monitor category competitors before adjusting.", input.TargetPrice)
	}
	if notes == "" {
		notes = "No pricing context provided; research comparable listings in the category before setting a price."
	}

	justification := "Based on the provided pricing inputs only."
	if len(input.CompetitiveAdvantages) > 0 {
		justification = fmt.Sprintf("Supported by: %s.", strings.Join(input.CompetitiveAdvantages, "; "))
	}

	return PricingStrategyPayload{
		PricingNotes:  notes,
		PricePosition: "mid-range",
		Justification: justification,
	}
}
