package pagination

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params là pagination input đã được sanitize.
// Mọi list/search endpoint dùng chung struct này.
type Params struct {
	Page  int
	Limit int
}

// Parse reads raw query values and applies defaults.
// Non-numeric hoặc non-positive values fall back to defaults.
func Parse(pageStr, limitStr string) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	if limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			if limit > MaxLimit {
				limit = MaxLimit
			}
			p.Limit = limit
		}
	}

	return p
}

// Normalize đảm bảo Params hợp lệ khi được construct trực tiếp (tests, services).
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the OFFSET value for the current window.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta là pagination envelope trả về cho client.
type Meta struct {
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	TotalItems      int64 `json:"totalItems"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewMeta derives the envelope:
//   - totalPages = ceil(totalItems / limit)
//   - hasNextPage = page < totalPages
//   - hasPreviousPage = page > 1
func NewMeta(p Params, totalItems int64) Meta {
	p = p.Normalize()

	totalPages := int((totalItems + int64(p.Limit) - 1) / int64(p.Limit))

	return Meta{
		Page:            p.Page,
		Limit:           p.Limit,
		TotalItems:      totalItems,
		TotalPages:      totalPages,
		HasNextPage:     p.Page < totalPages,
		HasPreviousPage: p.Page > 1,
	}
}
