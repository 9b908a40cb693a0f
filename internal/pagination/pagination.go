// Package pagination implements 1-indexed, non-strict page arithmetic:
// a page past the end is valid and simply empty.
package pagination

import (
	"errors"
	"math"
)

var (
	ErrInvalidPage    = errors.New("page number must be a positive integer")
	ErrInvalidPerPage = errors.New("page size must be a positive integer")
)

type Params struct {
	Page    int
	PerPage int
}

func New(page int, perPage int) (Params, error) {
	if page < 1 {
		return Params{}, ErrInvalidPage
	}
	if perPage < 1 {
		return Params{}, ErrInvalidPerPage
	}

	return Params{Page: page, PerPage: perPage}, nil
}

func (p Params) Limit() int {
	return p.PerPage
}

// Offset saturates at math.MaxInt, so a page too far out to address is
// past the end of any store and comes back empty.
func (p Params) Offset() int {
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}

	return (p.Page - 1) * p.PerPage
}

type Page[T any] struct {
	Items   []T   `json:"items"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasPrev bool  `json:"has_prev"`
	HasNext bool  `json:"has_next"`
	PrevNum *int  `json:"prev_num"`
	NextNum *int  `json:"next_num"`
}

func NewPage[T any](items []T, p Params, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}

	pages := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))

	page := &Page[T]{
		Items:   items,
		Page:    p.Page,
		PerPage: p.PerPage,
		Total:   total,
		Pages:   pages,
		HasPrev: p.Page > 1,
		HasNext: p.Page < pages,
	}
	if page.HasPrev {
		prev := p.Page - 1
		page.PrevNum = &prev
	}
	if page.HasNext {
		next := p.Page + 1
		page.NextNum = &next
	}

	return page
}

// Map converts the items of a page while keeping its navigation fields.
func Map[T any, R any](page *Page[T], fn func(T) R) *Page[R] {
	items := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, fn(item))
	}

	return &Page[R]{
		Items:   items,
		Page:    page.Page,
		PerPage: page.PerPage,
		Total:   page.Total,
		Pages:   page.Pages,
		HasPrev: page.HasPrev,
		HasNext: page.HasNext,
		PrevNum: page.PrevNum,
		NextNum: page.NextNum,
	}
}

// Window returns the slice of items covered by p, or an empty slice when p
// starts past the end.
func Window[T any](items []T, p Params) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}

	end := start + p.Limit()
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}
