package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/listing-lab/internal/agents"
	"github.com/JaimeStill/listing-lab/internal/inference"
	"github.com/JaimeStill/listing-lab/internal/listings"
)

const recommendationInstructions = `You are a listing editor for e-commerce marketplaces. Apply the review recommendations below to the current listing content.

OUTPUT FORMAT: Respond with ONLY a JSON object matching this exact schema:
{
	"title": "<revised title, or empty string to keep the current one>",
	"bullet_points": ["<revised bullet>", ...],
	"search_terms": ["<revised search term>", ...],
	"pricing_notes": "<revised pricing notes, or empty string to keep the current ones>",
	"applied": ["<one short sentence per recommendation describing the change made>"]
}

INSTRUCTIONS:
- Change only what the recommendations call for; leave every other value empty
- Empty string or empty array means the current content stays as it is
- Keep revised content factual; never invent product attributes
- applied must contain one entry per recommendation you acted on
- JSON response only; no preamble or dialog`

// recommendationUpdate is the model's rewrite of the fields the
// recommendations touch. Empty values keep the current content.
type recommendationUpdate struct {
	Title        string   `json:"title"`
	BulletPoints []string `json:"bullet_points"`
	SearchTerms  []string `json:"search_terms"`
	PricingNotes string   `json:"pricing_notes"`
	Applied      []string `json:"applied"`
}

func (u recommendationUpdate) empty() bool {
	return u.Title == "" && len(u.BulletPoints) == 0 &&
		len(u.SearchTerms) == 0 && u.PricingNotes == ""
}

// ApplyRecommendations turns the listing's stored review recommendations into
// concrete field updates. The model gets the first attempt; if generation or
// parsing fails, deterministic keyword heuristics apply instead. Either way
// the change persists as a normal versioned update with notes naming the
// source.
func (o *orchestrator) ApplyRecommendations(ctx context.Context, id uuid.UUID) (*listings.Listing, error) {
	current, err := o.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(current.Recommendations) == 0 {
		return nil, fmt.Errorf("%w: listing has no recommendations to apply", listings.ErrValidation)
	}

	cmd, source := o.recommendUpdate(ctx, *current)

	updated, err := o.store.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	o.logger.Info("recommendations applied",
		"id", id,
		"source", source,
		"recommendations", len(current.Recommendations),
		"version", updated.Version)

	return updated, nil
}

// recommendUpdate builds the update command, preferring the model rewrite and
// falling back to heuristics when the rewrite fails or changes nothing.
func (o *orchestrator) recommendUpdate(ctx context.Context, current listings.Listing) (listings.UpdateCommand, string) {
	if timeout := o.cfg.AgentTimeoutDuration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	temperature := 0.4
	gen, err := o.gen.Generate(ctx, buildRecommendationPrompt(current), inference.Options{
		Temperature: &temperature,
		Structured:  true,
	})
	if err != nil {
		o.logger.Warn("recommendation rewrite failed; applying heuristics", "error", err)
		return heuristicUpdate(current), "heuristic"
	}

	update, err := parseRecommendationUpdate(gen.Content)
	if err != nil {
		o.logger.Warn("recommendation rewrite unparseable; applying heuristics", "error", err)
		return heuristicUpdate(current), "heuristic"
	}
	if update.empty() {
		o.logger.Warn("recommendation rewrite changed nothing; applying heuristics")
		return heuristicUpdate(current), "heuristic"
	}

	return modelUpdate(current, update), "model"
}

func parseRecommendationUpdate(content string) (recommendationUpdate, error) {
	var update recommendationUpdate

	block, err := agents.ExtractJSON(content)
	if err != nil {
		return update, err
	}
	if err := json.Unmarshal(block, &update); err != nil {
		return update, fmt.Errorf("%w: %v", agents.ErrParse, err)
	}
	return update, nil
}

func buildRecommendationPrompt(current listings.Listing) string {
	var b strings.Builder

	b.WriteString(recommendationInstructions)
	b.WriteString("\n\nCurrent listing:\n")
	fmt.Fprintf(&b, "Title: %s\n", current.Title)
	if len(current.BulletPoints) > 0 {
		fmt.Fprintf(&b, "Bullets: %s\n", strings.Join(current.BulletPoints, " | "))
	}
	if len(current.SearchTerms) > 0 {
		fmt.Fprintf(&b, "Search terms: %s\n", strings.Join(current.SearchTerms, ", "))
	}
	if current.PricingNotes != "" {
		fmt.Fprintf(&b, "Pricing notes: %s\n", current.PricingNotes)
	}

	b.WriteString("\nRecommendations to apply:\n")
	for _, rec := range current.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	return b.String()
}

// modelUpdate maps a non-empty rewrite onto an update command. Slices replace
// only when the model produced them; strings replace only when non-empty.
func modelUpdate(current listings.Listing, update recommendationUpdate) listings.UpdateCommand {
	var cmd listings.UpdateCommand

	if update.Title != "" {
		title := truncateTitle(update.Title)
		cmd.Title = &title
	}
	if len(update.BulletPoints) > 0 {
		cmd.BulletPoints = update.BulletPoints
	}
	if len(update.SearchTerms) > 0 {
		cmd.SearchTerms = update.SearchTerms
	}
	if update.PricingNotes != "" {
		notes := update.PricingNotes
		cmd.PricingNotes = &notes
	}

	notes := append([]string(nil), current.Notes...)
	if len(update.Applied) == 0 {
		notes = append(notes, "recommendations: applied model rewrite")
	}
	for _, applied := range update.Applied {
		notes = append(notes, "recommendations: "+applied)
	}
	cmd.Notes = notes

	return cmd
}

// heuristicUpdate is the deterministic path: price-related recommendations
// adjust the pricing notes at +5% on the target price, keyword-related ones
// append quality search terms. Anything else records an advisory note.
func heuristicUpdate(current listings.Listing) listings.UpdateCommand {
	var cmd listings.UpdateCommand
	notes := append([]string(nil), current.Notes...)

	priced := false
	keyworded := false
	for _, rec := range current.Recommendations {
		lower := strings.ToLower(rec)

		if !priced && (strings.Contains(lower, "price") || strings.Contains(lower, "pricing")) {
			if current.ProductInput.TargetPrice > 0 {
				adjusted := math.Round(current.ProductInput.TargetPrice*1.05*100) / 100
				pricing := strings.TrimSpace(current.PricingNotes)
				suggestion := fmt.Sprintf("Consider testing a %.2f price point (+5%% on the current target) based on review feedback.", adjusted)
				if pricing != "" {
					pricing += "\n\n"
				}
				pricing += suggestion
				cmd.PricingNotes = &pricing
				notes = append(notes, "recommendations: adjusted pricing notes (heuristic)")
			}
			priced = true
		}

		if !keyworded && (strings.Contains(lower, "keyword") || strings.Contains(lower, "seo") || strings.Contains(lower, "search")) {
			cmd.SearchTerms = appendMissing(current.SearchTerms, "premium quality", "best value")
			notes = append(notes, "recommendations: appended quality search terms (heuristic)")
			keyworded = true
		}
	}

	if len(notes) == len(current.Notes) {
		notes = append(notes, "recommendations: no actionable changes identified")
	}

	cmd.Notes = notes
	return cmd
}

func appendMissing(terms []string, additions ...string) []string {
	merged := append([]string(nil), terms...)
	for _, addition := range additions {
		present := false
		for _, term := range merged {
			if strings.EqualFold(term, addition) {
				present = true
				break
			}
		}
		if !present {
			merged = append(merged, addition)
		}
	}
	return merged
}
