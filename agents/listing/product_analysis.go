package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

const productAnalysisInstructions = `You are a product analysis specialist for e-commerce listings. Analyze the product described below and extract its strongest features, selling points, and target market.

OUTPUT FORMAT: Respond with ONLY a JSON object matching this exact schema:
{
	"key_features": ["<feature phrased as a customer benefit>"],
	"selling_points": ["<short persuasive selling point>"],
	"target_market": "<primary market segment>",
	"confidence_score": <0.0-1.0>
}

INSTRUCTIONS:
- Extract 3-7 key features, each phrased as a concrete customer benefit
- Derive selling points from the competitive advantages and value proposition
- Describe the target market in one sentence
- confidence_score reflects how completely the product description supports the analysis
- JSON response only; no preamble or dialog`

// ProductAnalysisPayload is the feature and market analysis for a product.
type ProductAnalysisPayload struct {
	KeyFeatures   []string `json:"key_features"`
	SellingPoints []string `json:"selling_points"`
	TargetMarket  string   `json:"target_market"`
}

func (ProductAnalysisPayload) Kind() agents.Name { return ProductAnalysis }

type productAnalysisAgent struct {
	base
}

// NewProductAnalysis builds the agent that extracts key features, selling
// points, and the target market.
func NewProductAnalysis(gen agents.Generator, tables Tables) agents.Agent {
	return &productAnalysisAgent{base{
		name:               ProductAnalysis,
		description:        "Extracts key features, selling points, and the target market",
		temperature:        0.3,
		fallbackConfidence: 0.5,
		gen:                gen,
		tables:             tables,
	}}
}

func (a *productAnalysisAgent) Process(ctx context.Context, input agents.ProductInput) agents.Result {
	return a.run(ctx, productAnalysisInstructions, input.Describe(), parseProductAnalysis, func() agents.Payload {
		return productAnalysisFallback(input)
	})
}

func parseProductAnalysis(content string) (agents.Payload, *float64, error) {
	block, err := agents.ExtractJSON(content)
	if err != nil {
		return nil, nil, err
	}

	var decoded struct {
		ProductAnalysisPayload
		Confidence *float64 `json:"confidence_score"`
	}
	if err := json.Unmarshal(block, &decoded); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", agents.ErrParse, err)
	}

	if len(decoded.KeyFeatures) == 0 {
		return nil, nil, fmt.Errorf("%w: missing key_features", agents.ErrParse)
	}
	if strings.TrimSpace(decoded.TargetMarket) == "" {
		return nil, nil, fmt.Errorf("%w: missing target_market", agents.ErrParse)
	}

	return decoded.ProductAnalysisPayload, decoded.Confidence, nil
}

// productAnalysisFallback reads the analysis straight off the input: features
// become key features, advantages become selling points, and the target
// market is assembled from the customer description and category.
func productAnalysisFallback(input agents.ProductInput) ProductAnalysisPayload {
	features := input.Features
	if len(features) == 0 {
		features = []string{input.Name}
	}

	points := input.CompetitiveAdvantages
	if len(points) == 0 && input.ValueProposition != "" {
		points = []string{input.ValueProposition}
	}
	if points == nil {
		points = []string{}
	}

	market := input.TargetCustomer
	if market == "" {
		market = fmt.Sprintf("General consumers shopping for %s", strings.ToLower(input.Category))
	}

	return ProductAnalysisPayload{
		KeyFeatures:   features,
		SellingPoints: points,
		TargetMarket:  market,
	}
}
