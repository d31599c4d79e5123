package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

const customerResearchInstructions = `You are a customer research specialist for e-commerce. Profile the buyer of the product described below.

OUTPUT FORMAT: Respond with ONLY a JSON object matching this exact schema:
{
	"customer_profile": "<one-paragraph description of the typical buyer>",
	"pain_points": ["<problem this buyer wants solved>"],
	"buying_motivations": ["<what pushes this buyer to purchase>"],
	"confidence_score": <0.0-1.0>
}

INSTRUCTIONS:
- Ground the profile in the target customer and use situations provided
- List 3-5 pain points the product addresses
- List 3-5 buying motivations, strongest first
- confidence_score reflects how well the input describes the customer
- JSON response only; no preamble or dialog`

// CustomerResearchPayload profiles the product's buyer.
type CustomerResearchPayload struct {
	CustomerProfile   string   `json:"customer_profile"`
	PainPoints        []string `json:"pain_points"`
	BuyingMotivations []string `json:"buying_motivations"`
}

func (CustomerResearchPayload) Kind() agents.Name { return CustomerResearch }

type customerResearchAgent struct {
	base
}

// NewCustomerResearch builds the agent that profiles the buyer: who they
// are, what problems they want solved, and why they purchase.
func NewCustomerResearch(gen agents.Generator, tables Tables) agents.Agent {
	return &customerResearchAgent{base{
		name:               CustomerResearch,
		description:        "Profiles the buyer: demographics, pain points, and buying motivations",
		temperature:        0.4,
		fallbackConfidence: 0.45,
		gen:                gen,
		tables:             tables,
	}}
}

func (a *customerResearchAgent) Process(ctx context.Context, input agents.ProductInput) agents.Result {
	return a.run(ctx, customerResearchInstructions, input.Describe(), parseCustomerResearch, func() agents.Payload {
		return customerResearchFallback(input)
	})
}

func parseCustomerResearch(content string) (agents.Payload, *float64, error) {
	block, err := agents.ExtractJSON(content)
	if err != nil {
		return nil, nil, err
	}

	var decoded struct {
		CustomerResearchPayload
		Confidence *float64 `json:"confidence_score"`
	}
	if err := json.Unmarshal(block, &decoded); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", agents.ErrParse, err)
	}

	if strings.TrimSpace(decoded.CustomerProfile) == "" {
		return nil, nil, fmt.Errorf("%w: missing customer_profile", agents.ErrParse)
	}
	if len(decoded.PainPoints) == 0 {
		return nil, nil, fmt.Errorf("%w: missing pain_points", agents.ErrParse)
	}

	return decoded.CustomerResearchPayload, decoded.Confidence, nil
}

func customerResearchFallback(input agents.ProductInput) CustomerResearchPayload {
	profile := input.TargetCustomer
	if profile == "" {
		profile = fmt.Sprintf("Online shoppers comparing %s options before buying", strings.ToLower(input.Category))
	}

	pains := make([]string, 0, len(input.UseSituations))
	for _, situation := range input.UseSituations {
		pains = append(pains, fmt.Sprintf("Needs a dependable option for %s", strings.ToLower(situation)))
	}
	if len(pains) == 0 {
		pains = []string{"Uncertain which product in the category is worth the price"}
	}

	motivations := make([]string, 0, len(input.CompetitiveAdvantages)+1)
	if input.ValueProposition != "" {
		motivations = append(motivations, input.ValueProposition)
	}
	motivations = append(motivations, input.CompetitiveAdvantages...)
	if len(motivations) == 0 {
		motivations = []string{"Value for money", "Reliable everyday performance"}
	}

	return CustomerResearchPayload{
		CustomerProfile:   profile,
		PainPoints:        pains,
		BuyingMotivations: motivations,
	}
}
