package listing_test

import (
	"context"
	"testing"

	"github.com/JaimeStill/listing-lab/agents/listing"
	"github.com/JaimeStill/listing-lab/internal/agents"
)

func TestTechnicalSpecs_Success(t *testing.T) {
	gen := &scriptedGenerator{content: `{
		"specs": [
			{"name": "Display", "value": "1.4in AMOLED"},
			{"name": "Water resistance", "value": "5 ATM"}
		],
		"compatibility_notes": ["Requires Android 10+ or iOS 15+"],
		"confidence_score": 0.9
	}`}

	result := listing.NewTechnicalSpecs(gen, listing.DefaultTables()).
		Process(context.Background(), testInput())

	if result.Status != agents.StatusSuccess {
		t.Fatalf("got status %s, want %s (notes: %v)", result.Status, agents.StatusSuccess, result.Notes)
	}

	payload, ok := result.Payload.(listing.TechnicalSpecsPayload)
	if !ok {
		t.Fatalf("expected TechnicalSpecsPayload, got %T", result.Payload)
	}
	if len(payload.Specs) != 2 {
		t.Errorf("got %d specs, want 2", len(payload.Specs))
	}
}

func TestTechnicalSpecs_IncompleteEntry(t *testing.T) {
	gen := &scriptedGenerator{content: `{"specs": [{"name": "Display", "value": ""}]}`}

	result := listing.NewTechnicalSpecs(gen, listing.DefaultTables()).
		Process(context.Background(), testInput())

	if result.Status != agents.StatusPartial {
		t.Errorf("got status %s, want %s", result.Status, agents.StatusPartial)
	}
}

func TestTechnicalSpecs_Fallback(t *testing.T) {
	result := listing.NewTechnicalSpecs(unavailableGenerator(), listing.DefaultTables()).
		Process(context.Background(), testInput())

	if result.Status != agents.StatusPartial {
		t.Fatalf("got status %s, want %s", result.Status, agents.StatusPartial)
	}

	payload := result.Payload.(listing.TechnicalSpecsPayload)

	want := []listing.SpecEntry{
		{Name: "Display", Value: "1.4in AMOLED"},
		{Name: "Water resistance", Value: "5 ATM"},
		{Name: "Certification", Value: "CE"},
	}
	if len(payload.Specs) != len(want) {
		t.Fatalf("got %d specs, want %d: %+v", len(payload.Specs), len(want), payload.Specs)
	}
	for i, entry := range want {
		if payload.Specs[i] != entry {
			t.Errorf("spec %d: got %+v, want %+v", i, payload.Specs[i], entry)
		}
	}
	if len(payload.CompatibilityNotes) != 1 {
		t.Errorf("expected the warranty note, got %v", payload.CompatibilityNotes)
	}
}

func TestTechnicalSpecs_FallbackUnstructuredLines(t *testing.T) {
	input := agents.ProductInput{
		Name:           "Widget",
		Category:       "Gadgets",
		Specifications: []string{"weighs about 200g"},
	}

	result := listing.NewTechnicalSpecs(unavailableGenerator(), listing.DefaultTables()).
		Process(context.Background(), input)

	payload := result.Payload.(listing.TechnicalSpecsPayload)
	if len(payload.Specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(payload.Specs))
	}
	if payload.Specs[0].Name != "Specification" || payload.Specs[0].Value != "weighs about 200g" {
		t.Errorf("unexpected entry: %+v", payload.Specs[0])
	}
}

func TestTechnicalSpecs_FallbackEmptyInput(t *testing.T) {
	input := agents.ProductInput{Name: "Widget", Category: "Gadgets"}

	result := listing.NewTechnicalSpecs(unavailableGenerator(), listing.DefaultTables()).
		Process(context.Background(), input)

	payload := result.Payload.(listing.TechnicalSpecsPayload)
	if len(payload.Specs) != 1 || payload.Specs[0].Name != "Category" {
		t.Errorf("expected the category placeholder entry, got %+v", payload.Specs)
	}
}
