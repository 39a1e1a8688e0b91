package models

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PaginationQuery is bound from ?page=&limit=
type PaginationQuery struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Normalize applies defaults and clamps limit to MaxLimit
func (p *PaginationQuery) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset is the number of rows to skip for the current page
func (p PaginationQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of rows plus the total row count
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}
