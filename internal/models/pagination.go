package models

import "strconv"

// Pagination bounds for list endpoints
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Page is a bounded limit/offset window
type Page struct {
	Limit  int
	Offset int
}

// PaginationResult holds pagination metadata
type PaginationResult struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

// ListResult is the envelope returned by paginated list endpoints
type ListResult[T any] struct {
	Data       []T              `json:"data"`
	Pagination PaginationResult `json:"pagination"`
}

// NewPaginationResult creates a pagination result
func NewPaginationResult(page Page, total int64) PaginationResult {
	return PaginationResult{
		Total:   total,
		Limit:   page.Limit,
		Offset:  page.Offset,
		HasMore: int64(page.Offset)+int64(page.Limit) < total,
	}
}

// ParsePage reads raw limit/offset query values, falling back to defaults on
// anything unparsable and clamping limit to [1, MaxLimit] and offset to >= 0
func ParsePage(rawLimit, rawOffset string) Page {
	page := Page{Limit: DefaultLimit}

	if rawLimit != "" {
		if limit, err := strconv.Atoi(rawLimit); err == nil {
			page.Limit = limit
		}
	}
	if rawOffset != "" {
		if offset, err := strconv.Atoi(rawOffset); err == nil {
			page.Offset = offset
		}
	}

	page.Normalize()
	return page
}

// Normalize clamps the page into its valid bounds
func (p *Page) Normalize() {
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
