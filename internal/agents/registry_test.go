package agents_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

type stubAgent struct {
	name        agents.Name
	description string
}

func (s stubAgent) Name() agents.Name   { return s.name }
func (s stubAgent) Description() string { return s.description }

func (s stubAgent) Process(ctx context.Context, input agents.ProductInput) agents.Result {
	return agents.Result{Agent: s.name, Status: agents.StatusSuccess}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := agents.NewRegistry()
	r.Register(stubAgent{name: "listing_content", description: "writes listing copy"})

	agent, err := r.Get("listing_content")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if agent.Name() != "listing_content" {
		t.Errorf("Name() = %q, want %q", agent.Name(), "listing_content")
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := agents.NewRegistry()

	_, err := r.Get("nonexistent")
	if !errors.Is(err, agents.ErrUnknownAgent) {
		t.Errorf("Get() error = %v, want ErrUnknownAgent", err)
	}
}

func TestRegistry_NamesPreserveRegistrationOrder(t *testing.T) {
	r := agents.NewRegistry()
	r.Register(stubAgent{name: "product_analysis"})
	r.Register(stubAgent{name: "listing_content"})
	r.Register(stubAgent{name: "marketing_review"})

	names := r.Names()

	want := []agents.Name{"product_analysis", "listing_content", "marketing_review"}
	if len(names) != len(want) {
		t.Fatalf("len(names) = %d, want %d", len(names), len(want))
	}

	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRegistry_ReregisterKeepsPosition(t *testing.T) {
	r := agents.NewRegistry()
	r.Register(stubAgent{name: "product_analysis", description: "first"})
	r.Register(stubAgent{name: "listing_content"})
	r.Register(stubAgent{name: "product_analysis", description: "second"})

	names := r.Names()
	if len(names) != 2 {
		t.Fatalf("len(names) = %d, want 2", len(names))
	}

	if names[0] != "product_analysis" {
		t.Errorf("names[0] = %q, want original position kept", names[0])
	}

	agent, err := r.Get("product_analysis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if agent.Description() != "second" {
		t.Errorf("Description() = %q, want replacement", agent.Description())
	}
}

func TestRegistry_List(t *testing.T) {
	r := agents.NewRegistry()
	r.Register(stubAgent{name: "seo_keywords", description: "derives search terms"})
	r.Register(stubAgent{name: "image_search", description: "suggests product imagery"})

	infos := r.List()
	if len(infos) != 2 {
		t.Fatalf("len(infos) = %d, want 2", len(infos))
	}

	if infos[0].Name != "seo_keywords" || infos[0].Description != "derives search terms" {
		t.Errorf("infos[0] = %+v, want seo_keywords entry", infos[0])
	}
}

func TestProductInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   agents.ProductInput
		wantErr bool
	}{
		{"valid", agents.ProductInput{Name: "Smartwatch Pro X1", Category: "Electronics"}, false},
		{"missing name", agents.ProductInput{Category: "Electronics"}, true},
		{"missing category", agents.ProductInput{Name: "Smartwatch Pro X1"}, true},
		{"whitespace name", agents.ProductInput{Name: "   ", Category: "Electronics"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr && !errors.Is(err, agents.ErrInvalidInput) {
				t.Errorf("Validate() = %v, want ErrInvalidInput", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestProductInput_Describe(t *testing.T) {
	input := agents.ProductInput{
		Name:        "Smartwatch Pro X1",
		Category:    "Electronics",
		Features:    []string{"GPS", "7-day battery"},
		TargetPrice: 199.99,
	}

	desc := input.Describe()

	for _, want := range []string{"Product: Smartwatch Pro X1", "Category: Electronics", "GPS; 7-day battery", "Target price: 199.99"} {
		if !strings.Contains(desc, want) {
			t.Errorf("Describe() missing %q:\n%s", want, desc)
		}
	}
}

func TestProductInput_Describe_SkipsEmptyFields(t *testing.T) {
	input := agents.ProductInput{Name: "Widget", Category: "Tools"}

	desc := input.Describe()

	if strings.Contains(desc, "Warranty") || strings.Contains(desc, "Target price") {
		t.Errorf("Describe() should omit empty fields:\n%s", desc)
	}
}
