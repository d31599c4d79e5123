package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

const imageSearchInstructions = `You are a product photography director. Plan the image set for the e-commerce listing of the product described below.

OUTPUT FORMAT: Respond with ONLY a JSON object matching this exact schema:
{
	"image_prompts": ["<detailed shot description for a photographer or image generator>"],
	"image_urls": ["<stock photo URL if one is known, otherwise omit>"],
	"confidence_score": <0.0-1.0>
}

INSTRUCTIONS:
- Plan 4-6 shots: hero on white background, lifestyle in a use situation, detail close-ups, scale reference
- Each prompt names the subject, setting, angle, and lighting
- Only include image_urls you are certain resolve to real photos; an empty list is acceptable
- confidence_score reflects how visually specific the product input is
- JSON response only; no preamble or dialog`

// ImageSearchPayload plans the listing's image set: generation prompts plus
// any known stock URLs.
type ImageSearchPayload struct {
	ImagePrompts []string `json:"image_prompts"`
	ImageURLs    []string `json:"image_urls"`
}

func (ImageSearchPayload) Kind() agents.Name { return ImageSearch }

type imageSearchAgent struct {
	base
}

// NewImageSearch builds the agent that owns the listing's image prompts and
// stock URLs.
func NewImageSearch(gen agents.Generator, tables Tables) agents.Agent {
	return &imageSearchAgent{base{
		name:               ImageSearch,
		description:        "Plans the image set: shot prompts and stock photo URLs",
		temperature:        0.4,
		fallbackConfidence: 0.35,
		gen:                gen,
		tables:             tables,
	}}
}

func (a *imageSearchAgent) Process(ctx context.Context, input agents.ProductInput) agents.Result {
	return a.run(ctx, imageSearchInstructions, input.Describe(), parseImageSearch, func() agents.Payload {
		return imageSearchFallback(input, a.tables)
	})
}

func parseImageSearch(content string) (agents.Payload, *float64, error) {
	block, err := agents.ExtractJSON(content)
	if err != nil {
		return nil, nil, err
	}

	var decoded struct {
		ImageSearchPayload
		Confidence *float64 `json:"confidence_score"`
	}
	if err := json.Unmarshal(block, &decoded); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", agents.ErrParse, err)
	}

	if len(decoded.ImagePrompts) == 0 {
		return nil, nil, fmt.Errorf("%w: missing image_prompts", agents.ErrParse)
	}

	return decoded.ImageSearchPayload, decoded.Confidence, nil
}

// imageSearchFallback templates the standard shot list and pulls stock URLs
// from the category lookup table.
func imageSearchFallback(input agents.ProductInput, tables Tables) ImageSearchPayload {
	prompts := []string{
		fmt.Sprintf("Professional product photo of %s on a white background, studio lighting, front angle", input.Name),
		fmt.Sprintf("Lifestyle photo of %s in use by %s, natural light", input.Name,
			firstNonEmpty(input.TargetCustomer, "its target customer")),
		fmt.Sprintf("Close-up detail shot of %s highlighting build quality, macro lens", input.Name),
	}
	if len(input.UseSituations) > 0 {
		prompts = append(prompts, fmt.Sprintf("%s during %s, candid composition", input.Name,
			strings.ToLower(input.UseSituations[0])))
	}
	prompts = append(prompts, input.AssetDescriptions...)

	return ImageSearchPayload{
		ImagePrompts: prompts,
		ImageURLs:    tables.Images(input.Category),
	}
}
