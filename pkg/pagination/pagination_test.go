package pagination_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/listing-lab/pkg/pagination"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		request      pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 20},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size", pagination.PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid values untouched", pagination.PageRequest{Page: 3, PageSize: 50}, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.request.Normalize(testConfig())

			if tt.request.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.request.Page, tt.wantPage)
			}

			if tt.request.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", tt.request.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	tests := []struct {
		name    string
		request pagination.PageRequest
		want    int
	}{
		{"first page", pagination.PageRequest{Page: 1, PageSize: 20}, 0},
		{"second page", pagination.PageRequest{Page: 2, PageSize: 20}, 20},
		{"fifth page of ten", pagination.PageRequest{Page: 5, PageSize: 10}, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.request.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("pageSize", "15")
	values.Set("search", "smartwatch")
	values.Set("sort", "-Confidence,Name")

	request := pagination.PageRequestFromQuery(values, testConfig())

	if request.Page != 2 {
		t.Errorf("Page = %d, want 2", request.Page)
	}

	if request.PageSize != 15 {
		t.Errorf("PageSize = %d, want 15", request.PageSize)
	}

	if request.Search == nil || *request.Search != "smartwatch" {
		t.Errorf("Search = %v, want smartwatch", request.Search)
	}

	if len(request.Sort) != 2 {
		t.Fatalf("len(Sort) = %d, want 2", len(request.Sort))
	}

	if request.Sort[0].Field != "Confidence" || !request.Sort[0].Descending {
		t.Errorf("Sort[0] = %+v, want descending Confidence", request.Sort[0])
	}
}

func TestPageRequestFromQuery_Defaults(t *testing.T) {
	request := pagination.PageRequestFromQuery(url.Values{}, testConfig())

	if request.Page != 1 {
		t.Errorf("Page = %d, want 1", request.Page)
	}

	if request.PageSize != 20 {
		t.Errorf("PageSize = %d, want 20", request.PageSize)
	}

	if request.Search != nil {
		t.Errorf("Search = %v, want nil", request.Search)
	}

	if request.Sort != nil {
		t.Errorf("Sort = %v, want nil", request.Sort)
	}
}

func TestNewPageResult(t *testing.T) {
	request := pagination.PageRequest{Page: 1, PageSize: 20}

	result := pagination.NewPageResult([]string{"a", "b"}, 45, request)

	if result.Total != 45 {
		t.Errorf("Total = %d, want 45", result.Total)
	}

	if result.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", result.TotalPages)
	}

	if len(result.Data) != 2 {
		t.Errorf("len(Data) = %d, want 2", len(result.Data))
	}
}

func TestNewPageResult_NilData(t *testing.T) {
	request := pagination.PageRequest{Page: 1, PageSize: 20}

	result := pagination.NewPageResult[string](nil, 0, request)

	if result.Data == nil {
		t.Fatal("Data should be an empty slice, not nil")
	}

	if result.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", result.TotalPages)
	}
}

func TestConfig_Finalize(t *testing.T) {
	cfg := pagination.Config{}

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, want 20", cfg.DefaultPageSize)
	}

	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}
}

func TestConfig_Finalize_Env(t *testing.T) {
	t.Setenv(pagination.EnvDefaultPageSize, "10")
	t.Setenv(pagination.EnvMaxPageSize, "50")

	cfg := pagination.Config{}

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DefaultPageSize != 10 {
		t.Errorf("DefaultPageSize = %d, want 10", cfg.DefaultPageSize)
	}

	if cfg.MaxPageSize != 50 {
		t.Errorf("MaxPageSize = %d, want 50", cfg.MaxPageSize)
	}
}

func TestConfig_Finalize_DefaultExceedsMax(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}

	if err := cfg.Finalize(); err == nil {
		t.Fatal("expected error when default exceeds max")
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	cfg.Merge(pagination.Config{DefaultPageSize: 5})

	if cfg.DefaultPageSize != 5 {
		t.Errorf("DefaultPageSize = %d, want 5", cfg.DefaultPageSize)
	}

	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}
}
