package fetcher

import (
	"context"
	"slices"
	"sync"

	"github.com/nrfta/liststate-go"
	"github.com/nrfta/liststate-go/pager"
)

// PlainListFetcher fetches the full list from the executor and pages and
// sorts it on the client.
//
// A round-trip happens on a full refresh (nil changes) and when the search
// term or tags change; sorting and pagination changes reuse the cached list.
// A local change made while a filter round-trip is still running carries
// filters the cache was not loaded with, so it makes its own round-trip.
// Requests carry q and tags only. The count is the length of the full list.
type PlainListFetcher[T any] struct {
	*ItemsFetcher[T]

	mu         sync.Mutex
	allItems   []T
	loaded     bool
	generation uint64
	searchTerm string
	tags       []string
}

var _ Fetcher[any] = (*PlainListFetcher[any])(nil)

// NewPlain creates a PlainListFetcher.
func NewPlain[T any](executor liststate.Executor[T], opts ...Option[T]) *PlainListFetcher[T] {
	return &PlainListFetcher[T]{
		ItemsFetcher: newItemsFetcher(executor, plainRequest[T], opts),
	}
}

func plainRequest[T any](state State[T]) liststate.Request {
	return liststate.Request{
		Q:    searchParam(state.SearchTerm),
		Tags: slices.Clone(state.SelectedTags),
	}
}

// NeedsRequest reports whether changes to state require a round-trip.
func (f *PlainListFetcher[T]) NeedsRequest(changes *liststate.Changes, state State[T]) bool {
	if changes == nil || changes.Search || changes.Tags {
		return true
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return !f.loaded || f.searchTerm != state.SearchTerm || !slices.Equal(f.tags, state.SelectedTags)
}

func (f *PlainListFetcher[T]) Fetch(
	ctx context.Context,
	changes *liststate.Changes,
	state State[T],
	fctx *liststate.FetchContext,
) (*liststate.FetchResult[T], error) {
	fctx = ensureContext(state, fctx)

	var allItems []T
	if f.NeedsRequest(changes, state) {
		raw, err := f.do(ctx, state, fctx)
		if err != nil {
			return nil, err
		}
		allItems = raw.Results
		f.store(allItems, state, fctx.Generation)
	} else {
		allItems = f.cached()
	}

	sorted, ok := state.Sorter.Sort(allItems)
	if !ok {
		sorted = slices.Clone(allItems)
	}

	return &liststate.FetchResult[T]{
		Results:    pager.ItemsForPage(state.Paginator, sorted),
		Count:      len(sorted),
		AllResults: sorted,
	}, nil
}

// store replaces the cached list, unless a fetch minted later already did.
func (f *PlainListFetcher[T]) store(items []T, state State[T], generation uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loaded && generation < f.generation {
		return
	}

	f.allItems = slices.Clone(items)
	f.loaded = true
	f.generation = generation
	f.searchTerm = state.SearchTerm
	f.tags = slices.Clone(state.SelectedTags)
}

func (f *PlainListFetcher[T]) cached() []T {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.allItems
}
