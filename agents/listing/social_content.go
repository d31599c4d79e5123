package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

const socialContentInstructions = `You are a social media strategist for e-commerce brands. Create the social promotion kit for the product described below.

OUTPUT FORMAT: Respond with ONLY a JSON object matching this exact schema:
{
	"hashtags": ["<#hashtag>"],
	"captions": ["<ready-to-post caption>"],
	"confidence_score": <0.0-1.0>
}

INSTRUCTIONS:
- Produce 6-10 hashtags mixing product, category, and audience tags
- Every hashtag starts with # and contains no spaces
- Write 2-4 captions under 200 characters, each with a clear hook
- confidence_score reflects how distinctive the product input is
- JSON response only; no preamble or dialog`

// SocialContentPayload is the social promotion kit: hashtags and captions.
type SocialContentPayload struct {
	Hashtags []string `json:"hashtags"`
	Captions []string `json:"captions"`
}

func (SocialContentPayload) Kind() agents.Name { return SocialContent }

type socialContentAgent struct {
	base
}

// NewSocialContent builds the agent that owns the listing's hashtags and
// social captions.
func NewSocialContent(gen agents.Generator, tables Tables) agents.Agent {
	return &socialContentAgent{base{
		name:               SocialContent,
		description:        "Creates hashtags and social captions for promotion",
		temperature:        0.6,
		fallbackConfidence: 0.4,
		gen:                gen,
		tables:             tables,
	}}
}

func (a *socialContentAgent) Process(ctx context.Context, input agents.ProductInput) agents.Result {
	return a.run(ctx, socialContentInstructions, input.Describe(), parseSocialContent, func() agents.Payload {
		return socialContentFallback(input, a.tables)
	})
}

func parseSocialContent(content string) (agents.Payload, *float64, error) {
	block, err := agents.ExtractJSON(content)
	if err != nil {
		return nil, nil, err
	}

	var decoded struct {
		SocialContentPayload
		Confidence *float64 `json:"confidence_score"`
	}
	if err := json.Unmarshal(block, &decoded); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", agents.ErrParse, err)
	}

	if len(decoded.Hashtags) == 0 {
		return nil, nil, fmt.Errorf("%w: missing hashtags", agents.ErrParse)
	}

	return decoded.SocialContentPayload, decoded.Confidence, nil
}

// socialContentFallback derives hashtags from the product name and category
// tokens, topped up from the stock pool, and templates two captions.
func socialContentFallback(input agents.ProductInput, tables Tables) SocialContentPayload {
	candidates := []string{hashtagToken(input.Name)}
	for _, token := range strings.Fields(input.Name) {
		if cleaned := hashtagToken(token); len(cleaned) > 3 {
			candidates = append(candidates, cleaned)
		}
	}
	candidates = append(candidates, hashtagToken(input.Category))

	hashtags := make([]string, 0, len(candidates)+len(tables.Hashtags))
	for _, c := range candidates {
		if c != "" {
			hashtags = append(hashtags, "#"+c)
		}
	}
	hashtags = append(hashtags, tables.Hashtags...)
	hashtags = dedupeLower(hashtags, 10)

	hook := input.ValueProposition
	if hook == "" {
		hook = tables.Descriptor(input.Category)
	}
	captions := []string{
		fmt.Sprintf("Meet %s - %s", input.Name, hook),
		fmt.Sprintf("Built for %s.", firstNonEmpty(input.TargetCustomer, "everyday use")),
	}

	return SocialContentPayload{
		Hashtags: hashtags,
		Captions: captions,
	}
}

// hashtagToken lowercases a phrase and strips everything but letters and
// digits.
func hashtagToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
