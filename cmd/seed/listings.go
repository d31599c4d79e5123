package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/listing-lab/internal/agents"
	"github.com/JaimeStill/listing-lab/internal/listings"
)

//go:embed seeds/listings.toml
var seedFiles embed.FS

func init() {
	registerSeeder(&ListingSeeder{})
}

// ListingSeedData is the TOML structure for listing seed files.
type ListingSeedData struct {
	Listings []listingSeed `toml:"listings"`
}

// listingSeed is one curated demo listing. Fixed IDs keep repeated runs
// idempotent.
type listingSeed struct {
	ID              string      `toml:"id"`
	Product         productSeed `toml:"product"`
	Title           string      `toml:"title"`
	Description     string      `toml:"description"`
	BulletPoints    []string    `toml:"bullet_points"`
	SearchTerms     []string    `toml:"search_terms"`
	BackendKeywords []string    `toml:"backend_keywords"`
	PricingNotes    string      `toml:"pricing_notes"`
	Hashtags        []string    `toml:"hashtags"`
	Captions        []string    `toml:"captions"`
	ImagePrompts    []string    `toml:"image_prompts"`
	ImageURLs       []string    `toml:"image_urls"`
	Recommendations []string    `toml:"recommendations"`
	Confidence      float64     `toml:"confidence"`
	Status          string      `toml:"status"`
	Notes           []string    `toml:"notes"`
}

type productSeed struct {
	Name                  string   `toml:"name"`
	Category              string   `toml:"category"`
	Features              []string `toml:"features"`
	Variants              []string `toml:"variants"`
	TargetCustomer        string   `toml:"target_customer"`
	UseSituations         []string `toml:"use_situations"`
	ValueProposition      string   `toml:"value_proposition"`
	CompetitiveAdvantages []string `toml:"competitive_advantages"`
	Specifications        []string `toml:"specifications"`
	BoxContents           []string `toml:"box_contents"`
	Warranty              string   `toml:"warranty"`
	Certifications        []string `toml:"certifications"`
	TargetPrice           float64  `toml:"target_price"`
	PricingNotes          string   `toml:"pricing_notes"`
	KeywordHints          []string `toml:"keyword_hints"`
	AssetDescriptions     []string `toml:"asset_descriptions"`
}

func (p productSeed) input() agents.ProductInput {
	return agents.ProductInput{
		Name:                  p.Name,
		Category:              p.Category,
		Features:              p.Features,
		Variants:              p.Variants,
		TargetCustomer:        p.TargetCustomer,
		UseSituations:         p.UseSituations,
		ValueProposition:      p.ValueProposition,
		CompetitiveAdvantages: p.CompetitiveAdvantages,
		Specifications:        p.Specifications,
		BoxContents:           p.BoxContents,
		Warranty:              p.Warranty,
		Certifications:        p.Certifications,
		TargetPrice:           p.TargetPrice,
		PricingNotes:          p.PricingNotes,
		KeywordHints:          p.KeywordHints,
		AssetDescriptions:     p.AssetDescriptions,
	}
}

// ListingSeeder seeds curated demo listings with version snapshots. It loads
// seed data from an embedded file or an external file path.
type ListingSeeder struct {
	file string
}

// Name returns "listings" as the seeder identifier.
func (s *ListingSeeder) Name() string {
	return "listings"
}

// Description returns a human-readable description of this seeder.
func (s *ListingSeeder) Description() string {
	return "Seeds demo product listings with version snapshots"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *ListingSeeder) SetFile(path string) {
	s.file = path
}

// Seed loads seed data and upserts the listings. Fixed IDs make repeated runs
// update in place; the version 1 snapshot is only written once.
func (s *ListingSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := s.loadSeedData()
	if err != nil {
		return err
	}

	for _, seed := range data.Listings {
		if err := s.saveListing(ctx, tx, seed); err != nil {
			return fmt.Errorf("save listing %s: %w", seed.Product.Name, err)
		}
	}

	return nil
}

func (s *ListingSeeder) loadSeedData() (*ListingSeedData, error) {
	var content []byte
	var err error

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/listings.toml")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data ListingSeedData
	if err := toml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	return &data, nil
}

const upsertListingSQL = `
	INSERT INTO listings (
		id, product_input, category, title, description, bullet_points,
		search_terms, backend_keywords, pricing_notes, hashtags, captions,
		image_prompts, image_urls, recommendations, confidence, status,
		version, notes
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	ON CONFLICT (id) DO UPDATE SET
		product_input = EXCLUDED.product_input,
		category = EXCLUDED.category,
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		bullet_points = EXCLUDED.bullet_points,
		search_terms = EXCLUDED.search_terms,
		backend_keywords = EXCLUDED.backend_keywords,
		pricing_notes = EXCLUDED.pricing_notes,
		hashtags = EXCLUDED.hashtags,
		captions = EXCLUDED.captions,
		image_prompts = EXCLUDED.image_prompts,
		image_urls = EXCLUDED.image_urls,
		recommendations = EXCLUDED.recommendations,
		confidence = EXCLUDED.confidence,
		status = EXCLUDED.status,
		notes = EXCLUDED.notes,
		updated_at = NOW()
	RETURNING created_at, updated_at`

const insertSnapshotSQL = `
	INSERT INTO listing_versions (listing_id, version, snapshot)
	VALUES ($1, $2, $3)
	ON CONFLICT (listing_id, version) DO NOTHING`

func (s *ListingSeeder) saveListing(ctx context.Context, tx *sql.Tx, seed listingSeed) error {
	id, err := uuid.Parse(seed.ID)
	if err != nil {
		return fmt.Errorf("invalid listing id %q: %w", seed.ID, err)
	}

	listing := seed.listing(id)

	var createdAt, updatedAt time.Time
	err = tx.QueryRowContext(ctx, upsertListingSQL,
		listing.ID, encode(listing.ProductInput), listing.Category,
		listing.Title, listing.Description, encode(listing.BulletPoints),
		encode(listing.SearchTerms), encode(listing.BackendKeywords),
		listing.PricingNotes, encode(listing.Hashtags), encode(listing.Captions),
		encode(listing.ImagePrompts), encode(listing.ImageURLs),
		encode(listing.Recommendations), listing.Confidence, listing.Status,
		listing.Version, encode(listing.Notes),
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return err
	}

	listing.CreatedAt = createdAt
	listing.UpdatedAt = updatedAt

	if _, err := tx.ExecContext(ctx, insertSnapshotSQL,
		listing.ID, listing.Version, encode(listing)); err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}

	return nil
}

// listing materializes the seed entry as a version 1 listing with every
// slice field non-nil.
func (seed listingSeed) listing(id uuid.UUID) listings.Listing {
	status := listings.Status(seed.Status)
	if seed.Status == "" {
		status = listings.StatusDraft
	}

	return listings.Listing{
		ID:           id,
		ProductInput: seed.Product.input(),
		Category:     seed.Product.Category,
		Fields: listings.Fields{
			Title:           seed.Title,
			Description:     seed.Description,
			BulletPoints:    emptyIfNil(seed.BulletPoints),
			SearchTerms:     emptyIfNil(seed.SearchTerms),
			BackendKeywords: emptyIfNil(seed.BackendKeywords),
			PricingNotes:    seed.PricingNotes,
			Hashtags:        emptyIfNil(seed.Hashtags),
			Captions:        emptyIfNil(seed.Captions),
			ImagePrompts:    emptyIfNil(seed.ImagePrompts),
			ImageURLs:       emptyIfNil(seed.ImageURLs),
			Recommendations: emptyIfNil(seed.Recommendations),
		},
		Confidence: seed.Confidence,
		Status:     status,
		Version:    1,
		Notes:      emptyIfNil(seed.Notes),
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// encode marshals JSONB parameters. The listing types marshal without error.
func encode(v any) []byte {
	data, _ := json.Marshal(v)
	return data
}
