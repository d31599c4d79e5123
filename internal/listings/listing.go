// Package listings provides the versioned listing store: the merged record
// assembled from agent results, its lifecycle transitions, version history,
// and the repository and HTTP surface over it.
package listings

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

// Status is the listing lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Fields are the user-facing listing fields, each owned by exactly one
// agent. Slice members are never nil on a stored listing.
type Fields struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	BulletPoints    []string `json:"bullet_points"`
	SearchTerms     []string `json:"search_terms"`
	BackendKeywords []string `json:"backend_keywords"`
	PricingNotes    string   `json:"pricing_notes"`
	Hashtags        []string `json:"hashtags"`
	Captions        []string `json:"captions"`
	ImagePrompts    []string `json:"image_prompts"`
	ImageURLs       []string `json:"image_urls"`
	Recommendations []string `json:"recommendations"`
}

// normalized returns a copy with every nil slice replaced by an empty one.
func (f Fields) normalized() Fields {
	for _, slice := range []*[]string{
		&f.BulletPoints, &f.SearchTerms, &f.BackendKeywords,
		&f.Hashtags, &f.Captions, &f.ImagePrompts, &f.ImageURLs,
		&f.Recommendations,
	} {
		if *slice == nil {
			*slice = []string{}
		}
	}
	return f
}

// Listing is the merged listing record. Every mutation increments Version
// and records a snapshot in the version history.
type Listing struct {
	ID           uuid.UUID           `json:"id"`
	ProductInput agents.ProductInput `json:"product_input"`
	Category     string              `json:"category"`
	Fields
	Confidence float64   `json:"confidence"`
	Status     Status    `json:"status"`
	Version    int       `json:"version"`
	Notes      []string  `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AgentResult is a persisted agent invocation outcome attached to a listing.
// Position is the agent's invocation order within the build.
type AgentResult struct {
	ID         uuid.UUID       `json:"id"`
	ListingID  uuid.UUID       `json:"listing_id"`
	Agent      agents.Name     `json:"agent"`
	Status     agents.Status   `json:"status"`
	Payload    json.RawMessage `json:"payload"`
	Confidence float64         `json:"confidence"`
	Duration   time.Duration   `json:"duration_ns"`
	Notes      []string        `json:"notes"`
	Position   int             `json:"position"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Version is one historical snapshot of a listing.
type Version struct {
	ID        uuid.UUID       `json:"id"`
	ListingID uuid.UUID       `json:"listing_id"`
	Version   int             `json:"version"`
	Snapshot  json.RawMessage `json:"snapshot"`
	CreatedAt time.Time       `json:"created_at"`
}

// transition validates a lifecycle change. Re-entering the current status is
// rejected; every cross-status move is allowed.
func transition(current, next Status) error {
	if current == next {
		return fmt.Errorf("%w: listing already %s", ErrValidation, next)
	}
	return nil
}

// cloneForDuplicate copies a listing into a fresh draft: version history and
// identity are reset, and an optional new product name is substituted into
// the title and description.
func cloneForDuplicate(source Listing, cmd DuplicateCommand) Listing {
	clone := Listing{
		ProductInput: source.ProductInput,
		Category:     source.Category,
		Fields:       source.Fields.normalized(),
		Confidence:   source.Confidence,
		Status:       StatusDraft,
		Version:      1,
	}

	clone.Notes = make([]string, 0, len(source.Notes)+1)
	clone.Notes = append(clone.Notes, source.Notes...)
	clone.Notes = append(clone.Notes, "duplicated from "+source.ID.String())

	if cmd.Name != nil && *cmd.Name != "" && *cmd.Name != source.ProductInput.Name {
		oldName := source.ProductInput.Name
		clone.ProductInput.Name = *cmd.Name
		clone.Title = strings.ReplaceAll(clone.Title, oldName, *cmd.Name)
		clone.Description = strings.ReplaceAll(clone.Description, oldName, *cmd.Name)
	}

	return clone
}
