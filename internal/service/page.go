package service

import (
	"strings"

	catalogerrors "github.com/abgdnv/gocommerce-catalog/internal/errors"
	"github.com/abgdnv/gocommerce-catalog/internal/store/db"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	SortAsc  = "asc"
	SortDesc = "desc"
)

// PageRequest selects one page of an ordered listing. Page is zero based.
type PageRequest struct {
	Page          int32
	Size          int32
	SortField     string
	SortDirection string
}

// DefaultPageRequest returns the first page ordered by id.
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: 0, Size: DefaultPageSize, SortField: db.SortByID, SortDirection: SortAsc}
}

// Page is one slice of a listing together with the totals needed to navigate it.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int32 `json:"page"`
	Size          int32 `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int64 `json:"total_pages"`
}

// ParseSort parses "field" or "field,direction". An empty value means id ascending.
func ParseSort(value string) (field, direction string, err error) {
	if strings.TrimSpace(value) == "" {
		return db.SortByID, SortAsc, nil
	}
	parts := strings.Split(value, ",")
	if len(parts) > 2 {
		return "", "", catalogerrors.InvalidInput("Invalid sort: %s", value)
	}
	field = strings.TrimSpace(parts[0])
	direction = SortAsc
	if len(parts) == 2 {
		direction = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	return field, direction, nil
}

// validate checks the page bounds and that the sort is one sortable accepts.
func (p PageRequest) validate(sortable func(string) bool) error {
	if p.Page < 0 {
		return catalogerrors.InvalidInput("Invalid page number: %d", p.Page)
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return catalogerrors.InvalidInput("Invalid size number: %d", p.Size)
	}
	if p.SortField != "" && !sortable(p.SortField) {
		return catalogerrors.InvalidInput("Invalid sort field: %s", p.SortField)
	}
	if p.SortDirection != "" && p.SortDirection != SortAsc && p.SortDirection != SortDesc {
		return catalogerrors.InvalidInput("Invalid sort direction: %s", p.SortDirection)
	}
	return nil
}

func (p PageRequest) offset() int64 {
	return int64(p.Page) * int64(p.Size)
}

func (p PageRequest) desc() bool {
	return p.SortDirection == SortDesc
}

func newPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	size := int64(req.Size)
	return &Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    (total + size - 1) / size,
	}
}
