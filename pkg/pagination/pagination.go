package pagination

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/listing-lab/pkg/query"
)

type PageRequest struct {
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Search   *string           `json:"search,omitempty"`
	Sort     []query.SortField `json:"sort,omitempty"`
}

func (p *PageRequest) Normalize(cfg Config) {
	if p.Page < 1 {
		p.Page = 1
	}

	if p.PageSize < 1 {
		p.PageSize = cfg.DefaultPageSize
	}

	if p.PageSize > cfg.MaxPageSize {
		p.PageSize = cfg.MaxPageSize
	}
}

func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	request := PageRequest{}

	if page, err := strconv.Atoi(values.Get("page")); err == nil {
		request.Page = page
	}

	if pageSize, err := strconv.Atoi(values.Get("pageSize")); err == nil {
		request.PageSize = pageSize
	}

	if search := values.Get("search"); search != "" {
		request.Search = &search
	}

	request.Sort = query.ParseSortFields(values.Get("sort"))
	request.Normalize(cfg)

	return request
}

type PageResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

func NewPageResult[T any](data []T, total int64, request PageRequest) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := int((total + int64(request.PageSize) - 1) / int64(request.PageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       request.Page,
		PageSize:   request.PageSize,
		TotalPages: totalPages,
	}
}
