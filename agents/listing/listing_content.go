package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

const listingContentInstructions = `You are an e-commerce copywriter. Write the customer-facing listing copy for the product described below.

OUTPUT FORMAT: Respond with ONLY a JSON object matching this exact schema:
{
	"title": "<search-optimized product title, 80-200 characters>",
	"description": "<multi-paragraph product description>",
	"bullet_points": ["<benefit-led bullet point>"],
	"confidence_score": <0.0-1.0>
}

INSTRUCTIONS:
- The title leads with the product name and works in the strongest keyword naturally
- Write exactly 5 bullet points, each leading with the benefit and backed by a feature
- The description covers the product overview, key features, box contents, and warranty in separate paragraphs
- Never invent specifications that are not in the product details
- confidence_score reflects how well the input supports the copy
- JSON response only; no preamble or dialog`

// ListingContentPayload is the customer-facing copy: title, description,
// and bullet points.
type ListingContentPayload struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	BulletPoints []string `json:"bullet_points"`
}

func (ListingContentPayload) Kind() agents.Name { return ListingContent }

type listingContentAgent struct {
	base
}

// NewListingContent builds the copywriting agent that owns the listing's
// title, description, and bullet points.
func NewListingContent(gen agents.Generator, tables Tables) agents.Agent {
	return &listingContentAgent{base{
		name:               ListingContent,
		description:        "Writes the listing title, description, and bullet points",
		temperature:        0.7,
		fallbackConfidence: 0.45,
		gen:                gen,
		tables:             tables,
	}}
}

func (a *listingContentAgent) Process(ctx context.Context, input agents.ProductInput) agents.Result {
	return a.run(ctx, listingContentInstructions, input.Describe(), parseListingContent, func() agents.Payload {
		return listingContentFallback(input, a.tables)
	})
}

func parseListingContent(content string) (agents.Payload, *float64, error) {
	block, err := agents.ExtractJSON(content)
	if err != nil {
		return nil, nil, err
	}

	var decoded struct {
		ListingContentPayload
		Confidence *float64 `json:"confidence_score"`
	}
	if err := json.Unmarshal(block, &decoded); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", agents.ErrParse, err)
	}

	if strings.TrimSpace(decoded.Title) == "" {
		return nil, nil, fmt.Errorf("%w: missing title", agents.ErrParse)
	}
	if strings.TrimSpace(decoded.Description) == "" {
		return nil, nil, fmt.Errorf("%w: missing description", agents.ErrParse)
	}
	if len(decoded.BulletPoints) == 0 {
		return nil, nil, fmt.Errorf("%w: missing bullet_points", agents.ErrParse)
	}

	return decoded.ListingContentPayload, decoded.Confidence, nil
}

func listingContentFallback(input agents.ProductInput, tables Tables) ListingContentPayload {
	return ListingContentPayload{
		Title:        fallbackTitle(input, tables),
		Description:  fallbackDescription(input),
		BulletPoints: fallbackBullets(input),
	}
}

// fallbackTitle joins the product name, the category descriptor, and the top
// competitive advantage. Length capping happens at merge time.
func fallbackTitle(input agents.ProductInput, tables Tables) string {
	parts := []string{input.Name, tables.Descriptor(input.Category)}
	if len(input.CompetitiveAdvantages) > 0 {
		parts = append(parts, input.CompetitiveAdvantages[0])
	}
	return strings.Join(parts, " - ")
}

// fallbackBullets templates bullets from the value proposition, advantages,
// and features, each with an emoji lead-in, capped at five.
func fallbackBullets(input agents.ProductInput) []string {
	leads := []string{"🎯", "✅", "💪", "🌟", "⭐"}

	var sources []string
	if input.ValueProposition != "" {
		sources = append(sources, input.ValueProposition)
	}
	sources = append(sources, input.CompetitiveAdvantages...)
	sources = append(sources, input.Features...)
	if len(sources) == 0 {
		sources = []string{input.Name}
	}

	bullets := make([]string, 0, len(leads))
	for _, source := range sources {
		if len(bullets) == len(leads) {
			break
		}
		bullets = append(bullets, leads[len(bullets)]+" "+source)
	}
	return bullets
}

// fallbackDescription assembles the overview, feature list, box contents,
// and warranty paragraphs from whichever fields are populated.
func fallbackDescription(input agents.ProductInput) string {
	var paragraphs []string

	overview := fmt.Sprintf("%s is a %s product", input.Name, strings.ToLower(input.Category))
	if input.ValueProposition != "" {
		overview += ": " + input.ValueProposition
	}
	if !strings.HasSuffix(overview, ".") {
		overview += "."
	}
	paragraphs = append(paragraphs, overview)

	if len(input.Features) > 0 {
		paragraphs = append(paragraphs, "Key features:\n- "+strings.Join(input.Features, "\n- "))
	}
	if len(input.BoxContents) > 0 {
		paragraphs = append(paragraphs, "In the box:\n- "+strings.Join(input.BoxContents, "\n- "))
	}
	if input.Warranty != "" {
		paragraphs = append(paragraphs, "Warranty: "+input.Warranty)
	}

	return strings.Join(paragraphs, "\n\n")
}
