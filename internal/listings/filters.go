package listings

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/listing-lab/pkg/query"
)

type Filters struct {
	Status        *string
	Category      *string
	MinConfidence *float64
}

func FiltersFromQuery(values url.Values) Filters {
	f := Filters{}
	if status := values.Get("status"); status != "" {
		f.Status = &status
	}
	if category := values.Get("category"); category != "" {
		f.Category = &category
	}
	if raw := values.Get("min_confidence"); raw != "" {
		if min, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MinConfidence = &min
		}
	}
	return f
}

func (f Filters) Apply(builder *query.Builder) *query.Builder {
	if f.Status != nil {
		builder = builder.WhereEquals("Status", *f.Status)
	}
	builder = builder.WhereContains("Category", f.Category)
	if f.MinConfidence != nil {
		builder = builder.WhereGte("Confidence", *f.MinConfidence)
	}
	return builder
}
