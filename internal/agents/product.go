package agents

import (
	"fmt"
	"strings"
)

// ProductInput is the structured product description every agent works from.
// It is treated as immutable: agents read it, none of them write it.
type ProductInput struct {
	Name                  string   `json:"name"`
	Category              string   `json:"category"`
	Features              []string `json:"features,omitempty"`
	Variants              []string `json:"variants,omitempty"`
	TargetCustomer        string   `json:"target_customer,omitempty"`
	UseSituations         []string `json:"use_situations,omitempty"`
	ValueProposition      string   `json:"value_proposition,omitempty"`
	CompetitiveAdvantages []string `json:"competitive_advantages,omitempty"`
	Specifications        []string `json:"specifications,omitempty"`
	BoxContents           []string `json:"box_contents,omitempty"`
	Warranty              string   `json:"warranty,omitempty"`
	Certifications        []string `json:"certifications,omitempty"`
	TargetPrice           float64  `json:"target_price,omitempty"`
	PricingNotes          string   `json:"pricing_notes,omitempty"`
	KeywordHints          []string `json:"keyword_hints,omitempty"`
	AssetDescriptions     []string `json:"asset_descriptions,omitempty"`
}

// Validate checks the minimum fields a listing can be built from.
func (p ProductInput) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category required", ErrInvalidInput)
	}
	return nil
}

// Describe renders the product as prompt context, one labeled line per
// populated field.
func (p ProductInput) Describe() string {
	var b strings.Builder

	write := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	write("Product", p.Name)
	write("Category", p.Category)
	write("Features", strings.Join(p.Features, "; "))
	write("Variants", strings.Join(p.Variants, "; "))
	write("Target customer", p.TargetCustomer)
	write("Use situations", strings.Join(p.UseSituations, "; "))
	write("Value proposition", p.ValueProposition)
	write("Competitive advantages", strings.Join(p.CompetitiveAdvantages, "; "))
	write("Specifications", strings.Join(p.Specifications, "; "))
	write("Box contents", strings.Join(p.BoxContents, "; "))
	write("Warranty", p.Warranty)
	write("Certifications", strings.Join(p.Certifications, "; "))
	if p.TargetPrice > 0 {
		write("Target price", fmt.Sprintf("%.2f", p.TargetPrice))
	}
	write("Pricing notes", p.PricingNotes)
	write("Keyword hints", strings.Join(p.KeywordHints, "; "))
	write("Asset descriptions", strings.Join(p.AssetDescriptions, "; "))

	return strings.TrimRight(b.String(), "\n")
}
