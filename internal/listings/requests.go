package listings

import (
	"fmt"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

// CreateCommand is the atomic create: the merged record plus the agent
// results that produced it. Result positions follow slice order.
type CreateCommand struct {
	ProductInput agents.ProductInput `json:"product_input"`
	Fields
	Confidence float64       `json:"confidence"`
	Notes      []string      `json:"notes"`
	Results    []AgentResult `json:"results"`
}

// Validate checks the product input. Field content is not constrained: a
// subset build legitimately produces a record with empty unowned fields.
func (c CreateCommand) Validate() error {
	if err := c.ProductInput.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// listing assembles the draft record a create command describes.
func (c CreateCommand) listing() Listing {
	notes := c.Notes
	if notes == nil {
		notes = []string{}
	}
	return Listing{
		ProductInput: c.ProductInput,
		Category:     c.ProductInput.Category,
		Fields:       c.Fields.normalized(),
		Confidence:   c.Confidence,
		Status:       StatusDraft,
		Version:      1,
		Notes:        notes,
	}
}

// UpdateCommand is a partial field update. Nil members leave the stored
// value unchanged; an empty non-nil slice clears the field.
type UpdateCommand struct {
	Title           *string  `json:"title,omitempty"`
	Description     *string  `json:"description,omitempty"`
	BulletPoints    []string `json:"bullet_points,omitempty"`
	SearchTerms     []string `json:"search_terms,omitempty"`
	BackendKeywords []string `json:"backend_keywords,omitempty"`
	PricingNotes    *string  `json:"pricing_notes,omitempty"`
	Hashtags        []string `json:"hashtags,omitempty"`
	Captions        []string `json:"captions,omitempty"`
	ImagePrompts    []string `json:"image_prompts,omitempty"`
	ImageURLs       []string `json:"image_urls,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Confidence      *float64 `json:"confidence,omitempty"`
	Notes           []string `json:"notes,omitempty"`
}

// Apply overlays the update onto a listing and returns the result. Version,
// status, and timestamps are untouched; the repository owns those.
func (c UpdateCommand) Apply(l Listing) Listing {
	if c.Title != nil {
		l.Title = *c.Title
	}
	if c.Description != nil {
		l.Description = *c.Description
	}
	if c.BulletPoints != nil {
		l.BulletPoints = c.BulletPoints
	}
	if c.SearchTerms != nil {
		l.SearchTerms = c.SearchTerms
	}
	if c.BackendKeywords != nil {
		l.BackendKeywords = c.BackendKeywords
	}
	if c.PricingNotes != nil {
		l.PricingNotes = *c.PricingNotes
	}
	if c.Hashtags != nil {
		l.Hashtags = c.Hashtags
	}
	if c.Captions != nil {
		l.Captions = c.Captions
	}
	if c.ImagePrompts != nil {
		l.ImagePrompts = c.ImagePrompts
	}
	if c.ImageURLs != nil {
		l.ImageURLs = c.ImageURLs
	}
	if c.Recommendations != nil {
		l.Recommendations = c.Recommendations
	}
	if c.Confidence != nil {
		l.Confidence = agents.Clamp(*c.Confidence)
	}
	if c.Notes != nil {
		l.Notes = c.Notes
	}
	l.Fields = l.Fields.normalized()
	return l
}

// DuplicateCommand optionally renames the product on the copied listing.
type DuplicateCommand struct {
	Name *string `json:"name,omitempty"`
}
