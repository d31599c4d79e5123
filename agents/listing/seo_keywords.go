package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

const seoKeywordsInstructions = `You are a marketplace SEO specialist. Generate the search keywords for the product described below.

OUTPUT FORMAT: Respond with ONLY a JSON object matching this exact schema:
{
	"search_terms": ["<customer-facing search term>"],
	"backend_keywords": ["<indexable keyword not worth title space>"],
	"confidence_score": <0.0-1.0>
}

INSTRUCTIONS:
- Produce up to 10 search terms a shopper would actually type
- Produce up to 20 backend keywords: synonyms, misspellings, long-tail variants
- All keywords lowercase; no duplicates between the two lists
- confidence_score reflects how much keyword signal the input carries
- JSON response only; no preamble or dialog`

// SEOKeywordsPayload carries the listing's search terms and backend keywords.
type SEOKeywordsPayload struct {
	SearchTerms     []string `json:"search_terms"`
	BackendKeywords []string `json:"backend_keywords"`
}

func (SEOKeywordsPayload) Kind() agents.Name { return SEOKeywords }

type seoKeywordsAgent struct {
	base
}

// NewSEOKeywords builds the agent that owns the listing's search terms and
// backend keywords.
func NewSEOKeywords(gen agents.Generator, tables Tables) agents.Agent {
	return &seoKeywordsAgent{base{
		name:               SEOKeywords,
		description:        "Generates customer search terms and backend keywords",
		temperature:        0.3,
		fallbackConfidence: 0.5,
		gen:                gen,
		tables:             tables,
	}}
}

func (a *seoKeywordsAgent) Process(ctx context.Context, input agents.ProductInput) agents.Result {
	return a.run(ctx, seoKeywordsInstructions, input.Describe(), parseSEOKeywords, func() agents.Payload {
		return seoKeywordsFallback(input)
	})
}

func parseSEOKeywords(content string) (agents.Payload, *float64, error) {
	block, err := agents.ExtractJSON(content)
	if err != nil {
		return nil, nil, err
	}

	var decoded struct {
		SEOKeywordsPayload
		Confidence *float64 `json:"confidence_score"`
	}
	if err := json.Unmarshal(block, &decoded); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", agents.ErrParse, err)
	}

	if len(decoded.SearchTerms) == 0 {
		return nil, nil, fmt.Errorf("%w: missing search_terms", agents.ErrParse)
	}

	return decoded.SEOKeywordsPayload, decoded.Confidence, nil
}

// seoKeywordsFallback derives search terms from the keyword hints plus the
// lowercased name and category (deduplicated, capped at 10), and backend
// keywords from the hints plus name and advantage words longer than three
// characters (capped at 20).
func seoKeywordsFallback(input agents.ProductInput) SEOKeywordsPayload {
	terms := make([]string, 0, len(input.KeywordHints)+2)
	terms = append(terms, input.KeywordHints...)
	terms = append(terms, input.Name, input.Category)

	backend := make([]string, 0, 20)
	backend = append(backend, input.KeywordHints...)
	backend = append(backend, strings.Fields(input.Name)...)
	for _, advantage := range input.CompetitiveAdvantages {
		for _, word := range strings.Fields(advantage) {
			if len([]rune(word)) > 3 {
				backend = append(backend, word)
			}
		}
	}

	return SEOKeywordsPayload{
		SearchTerms:     dedupeLower(terms, 10),
		BackendKeywords: dedupeLower(backend, 20),
	}
}

// dedupeLower lowercases values, drops blanks and duplicates in order, and
// caps the result.
func dedupeLower(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, limit)
	for _, v := range values {
		lowered := strings.ToLower(strings.TrimSpace(v))
		if lowered == "" {
			continue
		}
		if _, dup := seen[lowered]; dup {
			continue
		}
		seen[lowered] = struct{}{}
		result = append(result, lowered)
		if len(result) == limit {
			break
		}
	}
	return result
}
