// Package pager provides the page-bound bookkeeping of a list view.
//
// A Paginator tracks the current page, the page size and the total number of
// items. Every setter normalizes its input instead of failing: malformed
// values coming from a URL reset the view to sane defaults rather than
// breaking it.
//
// Example usage:
//
//	p := pager.New(1, 20, 0)
//	p.SetTotalCount(95)
//	p.SetPage(5)
//	items := pager.ItemsForPage(p, allItems) // items 80..94
package pager

import (
	"strconv"
	"strings"

	"github.com/nrfta/liststate-go"
)

const (
	defaultPage         = 1
	defaultItemsPerPage = liststate.DefaultPageSize
)

// Option configures a single Paginator mutation.
type Option func(*setConfig)

type setConfig struct {
	validate bool
}

// WithoutValidation skips the page bounds check of a mutation. The page is
// still kept at or above 1.
func WithoutValidation() Option {
	return func(c *setConfig) {
		c.validate = false
	}
}

func applyOptions(opts []Option) setConfig {
	cfg := setConfig{validate: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Paginator holds the pagination state of a list view.
// It is a value type: copying a Paginator yields an independent snapshot.
type Paginator struct {
	page         int
	itemsPerPage int
	totalCount   int
}

// New creates a Paginator without validating the page against the total
// count, which is usually unknown until the first fetch completes.
// A non-positive itemsPerPage selects the default page size.
func New(page, itemsPerPage, totalCount int) Paginator {
	if itemsPerPage <= 0 {
		itemsPerPage = defaultItemsPerPage
	}

	p := Paginator{
		page:         defaultPage,
		itemsPerPage: defaultItemsPerPage,
	}

	p.SetTotalCount(totalCount, WithoutValidation())
	p.SetItemsPerPage(itemsPerPage, WithoutValidation())
	p.SetPage(page, WithoutValidation())

	return p
}

// Page returns the current 1-indexed page.
func (p Paginator) Page() int {
	return p.page
}

// ItemsPerPage returns the page size.
func (p Paginator) ItemsPerPage() int {
	return p.itemsPerPage
}

// TotalCount returns the total number of items.
func (p Paginator) TotalCount() int {
	return p.totalCount
}

// TotalPages returns ceil(totalCount / itemsPerPage).
func (p Paginator) TotalPages() int {
	if p.itemsPerPage < 1 {
		return 0
	}
	return (p.totalCount + p.itemsPerPage - 1) / p.itemsPerPage
}

// SetPage moves to page. Pages below 1 become 1. Unless validation is
// disabled, a page beyond TotalPages also falls back to 1.
func (p *Paginator) SetPage(page int, opts ...Option) {
	cfg := applyOptions(opts)

	if page < 1 || (cfg.validate && page > p.TotalPages()) {
		page = defaultPage
	}

	p.page = page
}

// SetItemsPerPage changes the page size, flooring it at 1, and re-validates
// the current page.
func (p *Paginator) SetItemsPerPage(itemsPerPage int, opts ...Option) {
	cfg := applyOptions(opts)

	p.itemsPerPage = max(itemsPerPage, 1)

	if cfg.validate {
		p.SetPage(p.page)
	}
}

// SetTotalCount changes the total count, flooring it at 0, and re-validates
// the current page.
func (p *Paginator) SetTotalCount(totalCount int, opts ...Option) {
	cfg := applyOptions(opts)

	p.totalCount = max(totalCount, 0)

	if cfg.validate {
		p.SetPage(p.page)
	}
}

// Offset returns the index of the first item of the current page.
func (p Paginator) Offset() int {
	return p.itemsPerPage * (p.page - 1)
}

// Limit returns the page size.
func (p Paginator) Limit() int {
	return p.itemsPerPage
}

// ItemsForPage returns the items of the current page out of the full list.
// It is used by client-side paginated (plain) lists.
func ItemsForPage[T any](p Paginator, items []T) []T {
	start := min(p.Offset(), len(items))
	end := min(start+p.itemsPerPage, len(items))

	return items[start:end]
}

// ParseInt converts a raw value (e.g. a query-string parameter) to an int,
// returning fallback when s is not a number.
func ParseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

// PageInfo builds the PageInfo of the current page.
func (p Paginator) PageInfo() liststate.PageInfo {
	count := p.totalCount
	totalPages := p.TotalPages()
	endOffset := max(totalPages-1, 0) * p.itemsPerPage

	return liststate.PageInfo{
		TotalCount:      func() (*int, error) { return &count, nil },
		TotalPages:      func() (int, error) { return totalPages, nil },
		StartCursor:     func() (*string, error) { return EncodeCursor(0), nil },
		EndCursor:       func() (*string, error) { return EncodeCursor(endOffset), nil },
		HasNextPage:     func() (bool, error) { return p.page < totalPages, nil },
		HasPreviousPage: func() (bool, error) { return p.page > 1, nil },
	}
}

// EdgeCursor returns the cursor of the item at index within the current page.
func (p Paginator) EdgeCursor(index int) string {
	return *EncodeCursor(p.Offset() + index)
}
