// Package fetcher decides, per state change, whether a list view needs a new
// request or can be served from items it already holds, and normalizes what
// the Executor returns into a liststate.FetchResult.
//
// Two strategies are provided:
//   - PaginatedListFetcher: the server paginates, sorts and filters; every
//     change is a round-trip.
//   - PlainListFetcher: the server returns the full (filtered) list once; sorting
//     and paging happen on the client until the filters change.
package fetcher

import (
	"context"
	"slices"

	"github.com/friendsofgo/errors"

	"github.com/nrfta/liststate-go"
	"github.com/nrfta/liststate-go/pager"
	"github.com/nrfta/liststate-go/sorter"
)

// State is the list state a fetch is performed for.
// It is a snapshot: fetchers may read it freely while the source moves on.
type State[T any] struct {
	Paginator    pager.Paginator
	Sorter       sorter.Sorter[T]
	SearchTerm   string
	SelectedTags []string
}

// Persisted returns the persisted view of the state.
func (s State[T]) Persisted() liststate.State {
	return liststate.State{
		Page:           s.Paginator.Page(),
		ItemsPerPage:   s.Paginator.ItemsPerPage(),
		OrderByField:   s.Sorter.Field(),
		OrderByReverse: s.Sorter.Reverse(),
		SearchTerm:     s.SearchTerm,
		Tags:           slices.Clone(s.SelectedTags),
	}
}

// Fetcher produces the items of a list view for a state change.
// A nil changes value means a full refresh.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, changes *liststate.Changes, state State[T], fctx *liststate.FetchContext) (*liststate.FetchResult[T], error)
}

// Option configures an ItemsFetcher.
type Option[T any] func(*ItemsFetcher[T])

// WithRequestBuilder decorates the request built from the state.
func WithRequestBuilder[T any](builder liststate.RequestBuilder) Option[T] {
	return func(f *ItemsFetcher[T]) {
		if builder != nil {
			f.buildRequest = builder
		}
	}
}

// WithResultProcessor transforms the results returned by the executor.
func WithResultProcessor[T any](processor liststate.ResultProcessor[T]) Option[T] {
	return func(f *ItemsFetcher[T]) {
		if processor != nil {
			f.processResults = processor
		}
	}
}

// ItemsFetcher performs a single request: it builds the request from the
// state, executes it and processes the results. It always hits the executor.
type ItemsFetcher[T any] struct {
	executor       liststate.Executor[T]
	baseRequest    func(State[T]) liststate.Request
	buildRequest   liststate.RequestBuilder
	processResults liststate.ResultProcessor[T]
}

var _ Fetcher[any] = (*ItemsFetcher[any])(nil)

// New creates an ItemsFetcher whose base request is empty; use
// WithRequestBuilder to fill it.
func New[T any](executor liststate.Executor[T], opts ...Option[T]) *ItemsFetcher[T] {
	return newItemsFetcher(executor, func(State[T]) liststate.Request { return liststate.Request{} }, opts)
}

func newItemsFetcher[T any](
	executor liststate.Executor[T],
	baseRequest func(State[T]) liststate.Request,
	opts []Option[T],
) *ItemsFetcher[T] {
	f := &ItemsFetcher[T]{
		executor:       executor,
		baseRequest:    baseRequest,
		buildRequest:   func(req liststate.Request, _ *liststate.FetchContext) liststate.Request { return req },
		processResults: func(results []T, _ *liststate.FetchContext) ([]T, error) { return results, nil },
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Request returns the request the fetcher would send for state.
func (f *ItemsFetcher[T]) Request(state State[T], fctx *liststate.FetchContext) liststate.Request {
	fctx = ensureContext(state, fctx)
	return f.buildRequest(f.baseRequest(state), fctx)
}

func (f *ItemsFetcher[T]) Fetch(
	ctx context.Context,
	_ *liststate.Changes,
	state State[T],
	fctx *liststate.FetchContext,
) (*liststate.FetchResult[T], error) {
	raw, err := f.do(ctx, state, fctx)
	if err != nil {
		return nil, err
	}

	return &liststate.FetchResult[T]{
		Results: raw.Results,
		Count:   raw.Count,
	}, nil
}

// do runs the request. Executor errors are returned unchanged.
func (f *ItemsFetcher[T]) do(ctx context.Context, state State[T], fctx *liststate.FetchContext) (*liststate.RawResponse[T], error) {
	if f.executor == nil {
		return nil, liststate.ErrNoExecutor
	}

	fctx = ensureContext(state, fctx)
	req := f.Request(state, fctx)

	raw, err := f.executor.Do(ctx, req, fctx)
	if err != nil {
		return nil, err
	}

	if raw == nil {
		raw = &liststate.RawResponse[T]{}
	}

	results, err := f.processResults(raw.Results, fctx)
	if err != nil {
		return nil, errors.Wrap(err, "process results")
	}

	return &liststate.RawResponse[T]{
		Results: results,
		Count:   raw.Count,
	}, nil
}

func ensureContext[T any](state State[T], fctx *liststate.FetchContext) *liststate.FetchContext {
	if fctx != nil {
		return fctx
	}
	return liststate.NewFetchContext(0, state.Persisted())
}
