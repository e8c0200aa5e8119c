package liststate

import (
	"maps"
	"net/url"
	"slices"
	"strconv"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// State is the persisted view of a list: what a URL or a storage backend
// needs to restore the same list view later.
type State struct {
	Page           int      `json:"page"`
	ItemsPerPage   int      `json:"itemsPerPage"`
	OrderByField   string   `json:"orderByField"`
	OrderByReverse bool     `json:"orderByReverse"`
	SearchTerm     string   `json:"searchTerm"`
	Tags           []string `json:"tags"`
}

// Clone returns a copy of the state that shares no memory with s.
func (s State) Clone() State {
	s.Tags = slices.Clone(s.Tags)
	return s
}

// PaginationChanges flags which pagination attributes changed.
type PaginationChanges struct {
	Page         bool
	ItemsPerPage bool
}

// Changes describes what changed since the last fetch.
// A nil *Changes means a full refresh.
type Changes struct {
	Pagination PaginationChanges
	Sorting    bool
	Search     bool
	Tags       bool
}

// Request is the transport-agnostic request built from a list state.
// Zero values are omitted from the wire form.
type Request struct {
	Page     int         `json:"page,omitempty"`
	PageSize int         `json:"page_size,omitempty"`
	Order    string      `json:"order,omitempty"`
	Q        null.String `json:"q"`
	Tags     []string    `json:"tags,omitempty"`

	// Params carries extra parameters added by a RequestBuilder.
	Params map[string]string `json:"-"`
}

// Values encodes the request as query-string values.
//
// Example:
//
//	req := liststate.Request{Page: 2, PageSize: 20, Order: "-created_at"}
//	req.Values().Encode() // "order=-created_at&page=2&page_size=20"
func (r Request) Values() url.Values {
	values := url.Values{}

	if r.Page > 0 {
		values.Set("page", strconv.Itoa(r.Page))
	}

	if r.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(r.PageSize))
	}

	if r.Order != "" {
		values.Set("order", r.Order)
	}

	if r.Q.Valid {
		values.Set("q", r.Q.String)
	}

	for _, tag := range r.Tags {
		values.Add("tags", tag)
	}

	for key, value := range r.Params {
		values.Set(key, value)
	}

	return values
}

// RawResponse is what an Executor returns.
// For plain lists Count may be left at zero; it is derived from Results.
type RawResponse[T any] struct {
	Results []T `json:"results"`
	Count   int `json:"count"`
}

// FetchResult is the normalized output of a fetcher.
type FetchResult[T any] struct {
	// Results contains the items of the current page.
	Results []T

	// Count is the total number of items available.
	Count int

	// AllResults contains every item, sorted, for plain lists. Nil otherwise.
	AllResults []T
}

// Snapshot is a read-only copy of an ItemsSource state handed to the rendering
// layer. Mutating it has no effect on the source.
type Snapshot[T any] struct {
	State

	TotalCount int
	PageItems  []T
	AllItems   []T
	Params     map[string]any
}

// FetchContext is shared by the collaborators of a single fetch.
type FetchContext struct {
	// RequestID identifies the fetch in logs and traces.
	RequestID uuid.UUID

	// Generation is the position of the fetch in call order.
	Generation uint64

	// State is the list state the fetch was minted from.
	State State

	params map[string]any
}

// NewFetchContext creates a FetchContext for the given generation and state.
func NewFetchContext(generation uint64, state State) *FetchContext {
	return &FetchContext{
		RequestID:  uuid.New(),
		Generation: generation,
		State:      state.Clone(),
		params:     map[string]any{},
	}
}

// SetCustomParams merges params into the context. They are committed to the
// source together with the results of the fetch.
func (c *FetchContext) SetCustomParams(params map[string]any) {
	if c.params == nil {
		c.params = map[string]any{}
	}
	maps.Copy(c.params, params)
}

// CustomParams returns a copy of the params set during the fetch.
func (c *FetchContext) CustomParams() map[string]any {
	return maps.Clone(c.params)
}
