package listings

import (
	"encoding/json"
	"time"

	"github.com/JaimeStill/listing-lab/pkg/repository"
)

// scanListing reads a row in projection order. JSONB columns arrive as raw
// bytes and are decoded here so callers always see non-nil slices.
func scanListing(s repository.Scanner) (Listing, error) {
	var (
		l        Listing
		input    []byte
		bullets  []byte
		terms    []byte
		keywords []byte
		hashtags []byte
		captions []byte
		prompts  []byte
		urls     []byte
		recs     []byte
		notes    []byte
	)

	err := s.Scan(
		&l.ID, &input, &l.Category, &l.Title, &l.Description,
		&bullets, &terms, &keywords, &l.PricingNotes,
		&hashtags, &captions, &prompts, &urls, &recs,
		&l.Confidence, &l.Status, &l.Version, &notes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return Listing{}, err
	}

	if err := json.Unmarshal(input, &l.ProductInput); err != nil {
		return Listing{}, err
	}

	lists := []struct {
		data []byte
		dest *[]string
	}{
		{bullets, &l.BulletPoints},
		{terms, &l.SearchTerms},
		{keywords, &l.BackendKeywords},
		{hashtags, &l.Hashtags},
		{captions, &l.Captions},
		{prompts, &l.ImagePrompts},
		{urls, &l.ImageURLs},
		{recs, &l.Recommendations},
		{notes, &l.Notes},
	}
	for _, list := range lists {
		if err := decodeList(list.data, list.dest); err != nil {
			return Listing{}, err
		}
	}

	return l, nil
}

func scanResult(s repository.Scanner) (AgentResult, error) {
	var (
		result     AgentResult
		payload    []byte
		durationNS int64
		notes      []byte
	)

	err := s.Scan(
		&result.ID, &result.ListingID, &result.Agent, &result.Status,
		&payload, &result.Confidence, &durationNS, &notes,
		&result.Position, &result.CreatedAt,
	)
	if err != nil {
		return AgentResult{}, err
	}

	result.Payload = json.RawMessage(payload)
	result.Duration = time.Duration(durationNS)
	if err := decodeList(notes, &result.Notes); err != nil {
		return AgentResult{}, err
	}

	return result, nil
}

func scanVersion(s repository.Scanner) (Version, error) {
	var (
		v        Version
		snapshot []byte
	)

	err := s.Scan(&v.ID, &v.ListingID, &v.Version, &snapshot, &v.CreatedAt)
	if err != nil {
		return Version{}, err
	}

	v.Snapshot = json.RawMessage(snapshot)
	return v, nil
}

func decodeList(data []byte, dest *[]string) error {
	if len(data) == 0 {
		*dest = []string{}
		return nil
	}
	return json.Unmarshal(data, dest)
}
