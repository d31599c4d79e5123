package listings

import (
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/listing-lab/pkg/query"
)

func TestFiltersFromQuery(t *testing.T) {
	t.Run("AllFilters", func(t *testing.T) {
		values := url.Values{}
		values.Set("status", "draft")
		values.Set("category", "Electronics")
		values.Set("min_confidence", "0.6")

		f := FiltersFromQuery(values)

		if f.Status == nil || *f.Status != "draft" {
			t.Errorf("status filter not parsed")
		}
		if f.Category == nil || *f.Category != "Electronics" {
			t.Errorf("category filter not parsed")
		}
		if f.MinConfidence == nil || *f.MinConfidence != 0.6 {
			t.Errorf("min_confidence filter not parsed")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		f := FiltersFromQuery(url.Values{})

		if f.Status != nil || f.Category != nil || f.MinConfidence != nil {
			t.Errorf("empty query should produce no filters: %+v", f)
		}
	})

	t.Run("InvalidConfidenceIgnored", func(t *testing.T) {
		values := url.Values{}
		values.Set("min_confidence", "high")

		f := FiltersFromQuery(values)

		if f.MinConfidence != nil {
			t.Errorf("unparseable min_confidence should be ignored")
		}
	})
}

func TestFiltersApply(t *testing.T) {
	t.Run("BuildsConditions", func(t *testing.T) {
		status := "published"
		category := "electron"
		min := 0.6
		f := Filters{Status: &status, Category: &category, MinConfidence: &min}

		sql, args := f.Apply(query.NewBuilder(projection, defaultSort)).BuildCount()

		if !strings.Contains(sql, "l.status = $1") {
			t.Errorf("missing status condition: %s", sql)
		}
		if !strings.Contains(sql, "l.category ILIKE $2") {
			t.Errorf("missing category condition: %s", sql)
		}
		if !strings.Contains(sql, "l.confidence >= $3") {
			t.Errorf("missing confidence condition: %s", sql)
		}
		if len(args) != 3 {
			t.Fatalf("args = %v, want 3", args)
		}
		if args[1] != "%electron%" {
			t.Errorf("category arg = %v, want %%electron%%", args[1])
		}
	})

	t.Run("NoFiltersNoWhere", func(t *testing.T) {
		sql, args := Filters{}.Apply(query.NewBuilder(projection, defaultSort)).BuildCount()

		if strings.Contains(sql, "WHERE") {
			t.Errorf("unexpected WHERE clause: %s", sql)
		}
		if len(args) != 0 {
			t.Errorf("unexpected args: %v", args)
		}
	})
}
