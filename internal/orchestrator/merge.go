package orchestrator

import (
	"math"

	"github.com/JaimeStill/listing-lab/agents/listing"
	"github.com/JaimeStill/listing-lab/internal/agents"
	"github.com/JaimeStill/listing-lab/internal/listings"
)

const maxTitleRunes = 200

// merged is the outcome of folding a result set into listing fields.
type merged struct {
	Fields     listings.Fields
	Confidence float64
	Notes      []string
	Fallbacks  int

	owned map[agents.Name]bool
}

// mergeResults walks results in invocation order and assembles the listing.
// Field ownership is exclusive: each payload kind populates only the fields
// its agent owns, so the merge never arbitrates between agents. Agents whose
// payloads own no listing field contribute confidence and notes only.
//
// Aggregate confidence is the simple average of every result's confidence,
// rounded to two decimals, which keeps it reproducible for a fixed result
// set.
func mergeResults(results []agents.Result) merged {
	m := merged{
		Notes: []string{},
		owned: make(map[agents.Name]bool),
	}

	var sum float64
	for _, result := range results {
		switch payload := result.Payload.(type) {
		case listing.ListingContentPayload:
			m.Fields.Title = truncateTitle(payload.Title)
			m.Fields.Description = payload.Description
			m.Fields.BulletPoints = orEmpty(payload.BulletPoints)
		case listing.PricingStrategyPayload:
			m.Fields.PricingNotes = payload.PricingNotes
		case listing.SEOKeywordsPayload:
			m.Fields.SearchTerms = orEmpty(payload.SearchTerms)
			m.Fields.BackendKeywords = orEmpty(payload.BackendKeywords)
		case listing.SocialContentPayload:
			m.Fields.Hashtags = orEmpty(payload.Hashtags)
			m.Fields.Captions = orEmpty(payload.Captions)
		case listing.ImageSearchPayload:
			m.Fields.ImagePrompts = orEmpty(payload.ImagePrompts)
			m.Fields.ImageURLs = orEmpty(payload.ImageURLs)
		case listing.MarketingReviewPayload:
			m.Fields.Recommendations = orEmpty(payload.Recommendations)
		}

		if result.Payload != nil {
			m.owned[result.Payload.Kind()] = true
		}

		sum += result.Confidence
		if result.Fallback() {
			m.Fallbacks++
		}
		for _, note := range result.Notes {
			m.Notes = append(m.Notes, string(result.Agent)+": "+note)
		}
	}

	if len(results) > 0 {
		m.Confidence = math.Round(sum/float64(len(results))*100) / 100
	}

	return m
}

// command converts the merge into a partial update that touches only the
// fields whose owning agent is present in the result set. Fields owned by
// agents that never ran keep their stored values.
func (m merged) command() listings.UpdateCommand {
	cmd := listings.UpdateCommand{
		Confidence: &m.Confidence,
		Notes:      m.Notes,
	}

	if m.owned[listing.ListingContent] {
		cmd.Title = &m.Fields.Title
		cmd.Description = &m.Fields.Description
		cmd.BulletPoints = orEmpty(m.Fields.BulletPoints)
	}
	if m.owned[listing.PricingStrategy] {
		cmd.PricingNotes = &m.Fields.PricingNotes
	}
	if m.owned[listing.SEOKeywords] {
		cmd.SearchTerms = orEmpty(m.Fields.SearchTerms)
		cmd.BackendKeywords = orEmpty(m.Fields.BackendKeywords)
	}
	if m.owned[listing.SocialContent] {
		cmd.Hashtags = orEmpty(m.Fields.Hashtags)
		cmd.Captions = orEmpty(m.Fields.Captions)
	}
	if m.owned[listing.ImageSearch] {
		cmd.ImagePrompts = orEmpty(m.Fields.ImagePrompts)
		cmd.ImageURLs = orEmpty(m.Fields.ImageURLs)
	}
	if m.owned[listing.MarketingReview] {
		cmd.Recommendations = orEmpty(m.Fields.Recommendations)
	}

	return cmd
}

// truncateTitle bounds a title to the marketplace limit, ending at 197 runes
// plus an ellipsis when the payload overruns it.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleRunes {
		return title
	}
	return string(runes[:maxTitleRunes-3]) + "..."
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
