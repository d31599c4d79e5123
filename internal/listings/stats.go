package listings

import (
	"context"
	"fmt"
	"math"

	"github.com/JaimeStill/listing-lab/pkg/repository"
)

// Stats summarizes the listing store. ConfidenceBands buckets aggregate
// confidence into five 0.2-wide ranges; SuccessRate is the share of listings
// with confidence at or above 0.6. Ratios are rounded to two decimals.
type Stats struct {
	Total             int64            `json:"total"`
	ByStatus          map[Status]int64 `json:"by_status"`
	ByCategory        map[string]int64 `json:"by_category"`
	ConfidenceBands   map[string]int64 `json:"confidence_bands"`
	AverageConfidence float64          `json:"average_confidence"`
	SuccessRate       float64          `json:"success_rate"`
}

const statsTotalsSQL = `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE confidence >= 0.6),
		COALESCE(AVG(confidence), 0)
	FROM listings`

const statsByStatusSQL = `
	SELECT status, COUNT(*)
	FROM listings
	GROUP BY status`

const statsByCategorySQL = `
	SELECT category, COUNT(*)
	FROM listings
	GROUP BY category`

const statsBandsSQL = `
	SELECT LEAST(FLOOR(confidence * 5), 4)::int AS band, COUNT(*)
	FROM listings
	GROUP BY band`

type groupCount struct {
	key   string
	count int64
}

type bandCount struct {
	band  int
	count int64
}

func scanGroup(s repository.Scanner) (groupCount, error) {
	var g groupCount
	if err := s.Scan(&g.key, &g.count); err != nil {
		return groupCount{}, err
	}
	return g, nil
}

func scanBand(s repository.Scanner) (bandCount, error) {
	var b bandCount
	if err := s.Scan(&b.band, &b.count); err != nil {
		return bandCount{}, err
	}
	return b, nil
}

func (r *repo) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByStatus:        make(map[Status]int64),
		ByCategory:      make(map[string]int64),
		ConfidenceBands: make(map[string]int64),
	}
	for band := 0; band < 5; band++ {
		stats.ConfidenceBands[bandLabel(band)] = 0
	}

	var (
		successes int64
		average   float64
	)
	if err := r.db.QueryRowContext(ctx, statsTotalsSQL).Scan(&stats.Total, &successes, &average); err != nil {
		return nil, fmt.Errorf("listing totals: %w", err)
	}
	stats.AverageConfidence = math.Round(average*100) / 100
	if stats.Total > 0 {
		stats.SuccessRate = math.Round(float64(successes)/float64(stats.Total)*100) / 100
	}

	statuses, err := repository.QueryMany(ctx, r.db, statsByStatusSQL, nil, scanGroup)
	if err != nil {
		return nil, fmt.Errorf("listings by status: %w", err)
	}
	for _, g := range statuses {
		stats.ByStatus[Status(g.key)] = g.count
	}

	categories, err := repository.QueryMany(ctx, r.db, statsByCategorySQL, nil, scanGroup)
	if err != nil {
		return nil, fmt.Errorf("listings by category: %w", err)
	}
	for _, g := range categories {
		stats.ByCategory[g.key] = g.count
	}

	bands, err := repository.QueryMany(ctx, r.db, statsBandsSQL, nil, scanBand)
	if err != nil {
		return nil, fmt.Errorf("confidence bands: %w", err)
	}
	for _, b := range bands {
		stats.ConfidenceBands[bandLabel(b.band)] = b.count
	}

	return stats, nil
}

func bandLabel(band int) string {
	low := float64(band) * 0.2
	return fmt.Sprintf("%.1f-%.1f", low, low+0.2)
}
