// Package listing implements the ten agents that assemble an e-commerce
// listing: product analysis, customer research, value proposition, technical
// specs, listing copy, pricing, keywords, social content, imagery, and the
// final marketing review. Each agent pairs an instruction template with a
// typed payload, a parser, and a deterministic fallback generator, so a
// failed generation degrades to templated content instead of an error.
package listing

import (
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

const (
	ProductAnalysis  agents.Name = "product_analysis"
	CustomerResearch agents.Name = "customer_research"
	ValueProposition agents.Name = "value_proposition"
	TechnicalSpecs   agents.Name = "technical_specs"
	ListingContent   agents.Name = "listing_content"
	PricingStrategy  agents.Name = "pricing_strategy"
	SEOKeywords      agents.Name = "seo_keywords"
	SocialContent    agents.Name = "social_content"
	ImageSearch      agents.Name = "image_search"
	MarketingReview  agents.Name = "marketing_review"
)

// All returns the full agent set in canonical invocation order. The review
// agent is last: it consumes the other agents' results as evidence.
func All(gen agents.Generator, tables Tables) []agents.Agent {
	return []agents.Agent{
		NewProductAnalysis(gen, tables),
		NewCustomerResearch(gen, tables),
		NewValueProposition(gen, tables),
		NewTechnicalSpecs(gen, tables),
		NewListingContent(gen, tables),
		NewPricingStrategy(gen, tables),
		NewSEOKeywords(gen, tables),
		NewSocialContent(gen, tables),
		NewImageSearch(gen, tables),
		NewMarketingReview(gen, tables),
	}
}

// Register adds the full agent set to a registry in canonical order.
func Register(r *agents.Registry, gen agents.Generator, tables Tables) {
	for _, agent := range All(gen, tables) {
		r.Register(agent)
	}
}

// DecodePayload restores a persisted payload into its typed form.
func DecodePayload(name agents.Name, data json.RawMessage) (agents.Payload, error) {
	switch name {
	case ProductAnalysis:
		return decodePayload[ProductAnalysisPayload](data)
	case CustomerResearch:
		return decodePayload[CustomerResearchPayload](data)
	case ValueProposition:
		return decodePayload[ValuePropositionPayload](data)
	case TechnicalSpecs:
		return decodePayload[TechnicalSpecsPayload](data)
	case ListingContent:
		return decodePayload[ListingContentPayload](data)
	case PricingStrategy:
		return decodePayload[PricingStrategyPayload](data)
	case SEOKeywords:
		return decodePayload[SEOKeywordsPayload](data)
	case SocialContent:
		return decodePayload[SocialContentPayload](data)
	case ImageSearch:
		return decodePayload[ImageSearchPayload](data)
	case MarketingReview:
		return decodePayload[MarketingReviewPayload](data)
	default:
		return nil, fmt.Errorf("%w: %s", agents.ErrUnknownAgent, name)
	}
}

func decodePayload[P agents.Payload](data json.RawMessage) (agents.Payload, error) {
	var payload P
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", agents.ErrParse, err)
	}
	return payload, nil
}
