package listing_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/JaimeStill/listing-lab/agents/listing"
	"github.com/JaimeStill/listing-lab/internal/agents"
	"github.com/JaimeStill/listing-lab/internal/inference"
)

// scriptedGenerator returns canned content or a fixed error, recording every
// prompt it receives.
type scriptedGenerator struct {
	content string
	err     error
	prompts []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string, _ inference.Options) (*inference.Generation, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return nil, g.err
	}
	return &inference.Generation{Content: g.content, Model: "test-model"}, nil
}

func unavailableGenerator() *scriptedGenerator {
	return &scriptedGenerator{err: inference.ErrConnection}
}

func testInput() agents.ProductInput {
	return agents.ProductInput{
		Name:                  "Smartwatch Pro X1",
		Category:              "Electronics",
		Features:              []string{"GPS", "7-day battery"},
		TargetCustomer:        "Active professionals",
		UseSituations:         []string{"Daily workouts"},
		ValueProposition:      "Tracks everything without daily charging",
		CompetitiveAdvantages: []string{"7-day battery life", "Built-in GPS"},
		Specifications:        []string{"Display: 1.4in AMOLED", "Water resistance: 5 ATM"},
		BoxContents:           []string{"Watch", "Charging cable"},
		Warranty:              "2-year limited warranty",
		Certifications:        []string{"CE"},
		TargetPrice:           199.99,
		KeywordHints:          []string{"fitness tracker"},
		AssetDescriptions:     []string{"Hero shot on wrist"},
	}
}

func TestAll_CanonicalOrder(t *testing.T) {
	set := listing.All(unavailableGenerator(), listing.DefaultTables())

	want := []agents.Name{
		listing.ProductAnalysis,
		listing.CustomerResearch,
		listing.ValueProposition,
		listing.TechnicalSpecs,
		listing.ListingContent,
		listing.PricingStrategy,
		listing.SEOKeywords,
		listing.SocialContent,
		listing.ImageSearch,
		listing.MarketingReview,
	}

	if len(set) != len(want) {
		t.Fatalf("expected %d agents, got %d", len(want), len(set))
	}
	for i, agent := range set {
		if agent.Name() != want[i] {
			t.Errorf("position %d: got %s, want %s", i, agent.Name(), want[i])
		}
		if agent.Description() == "" {
			t.Errorf("%s: empty description", agent.Name())
		}
	}

	if _, ok := set[len(set)-1].(agents.EvidenceAgent); !ok {
		t.Error("expected the review agent to implement EvidenceAgent")
	}
}

func TestRegister(t *testing.T) {
	registry := agents.NewRegistry()
	listing.Register(registry, unavailableGenerator(), listing.DefaultTables())

	names := registry.Names()
	if len(names) != 10 {
		t.Fatalf("expected 10 registered agents, got %d", len(names))
	}
	if names[0] != listing.ProductAnalysis {
		t.Errorf("expected %s first, got %s", listing.ProductAnalysis, names[0])
	}
	if names[len(names)-1] != listing.MarketingReview {
		t.Errorf("expected %s last, got %s", listing.MarketingReview, names[len(names)-1])
	}

	if _, err := registry.Get(listing.SEOKeywords); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodePayload(t *testing.T) {
	payload := listing.ListingContentPayload{
		Title:        "Smartwatch Pro X1 - GPS Sport Watch",
		Description:  "A watch.",
		BulletPoints: []string{"🎯 Tracks everything"},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := listing.DecodePayload(listing.ListingContent, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored, ok := decoded.(listing.ListingContentPayload)
	if !ok {
		t.Fatalf("expected ListingContentPayload, got %T", decoded)
	}
	if restored.Title != payload.Title {
		t.Errorf("got title %q, want %q", restored.Title, payload.Title)
	}
	if decoded.Kind() != listing.ListingContent {
		t.Errorf("got kind %s, want %s", decoded.Kind(), listing.ListingContent)
	}
}

func TestDecodePayload_UnknownAgent(t *testing.T) {
	_, err := listing.DecodePayload("copywriter_9000", json.RawMessage(`{}`))
	if !errors.Is(err, agents.ErrUnknownAgent) {
		t.Errorf("expected ErrUnknownAgent, got %v", err)
	}
}

func TestDecodePayload_InvalidJSON(t *testing.T) {
	_, err := listing.DecodePayload(listing.SEOKeywords, json.RawMessage(`{"search_terms": "not-a-list"}`))
	if !errors.Is(err, agents.ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}
