// Package source provides ItemsSource, the single entry point a list view
// uses to page, sort, search and filter its items.
//
// Mutators update the local state synchronously and return immediately; the
// fetch runs in the background and its outcome is reported to the
// liststate.Listener of the source. Every mutation mints a new generation in
// call order and only the results of the latest generation are committed:
// a slow, older request can never overwrite the results of a newer one.
//
// Example usage:
//
//	st := storage.NewURL(medium, cfg)
//	src := source.New[*models.Dashboard](
//	    fetcher.NewPaginated[*models.Dashboard](executor),
//	    source.WithConfig[*models.Dashboard](cfg),
//	    source.WithState[*models.Dashboard](st.GetState()),
//	    source.WithListener[*models.Dashboard](liststate.ListenerFuncs[*models.Dashboard]{
//	        AfterUpdate: func(ctx context.Context, s liststate.Snapshot[*models.Dashboard]) {
//	            st.SetState(s.State)
//	            render(s)
//	        },
//	    }),
//	)
//	src.Update(ctx)
package source

import (
	"context"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/nrfta/liststate-go"
	"github.com/nrfta/liststate-go/fetcher"
	"github.com/nrfta/liststate-go/pager"
	"github.com/nrfta/liststate-go/sorter"
)

// Pagination carries a pagination update. Nil fields are left unchanged.
type Pagination struct {
	Page         *int
	ItemsPerPage *int
}

// ItemsSource owns the state of a list view.
// It is safe for concurrent use.
type ItemsSource[T any] struct {
	fetcher  fetcher.Fetcher[T]
	listener liststate.Listener[T]
	logger   *zap.Logger
	config   *liststate.Config
	schema   *sorter.Schema[T]
	initial  *liststate.State

	mu                sync.Mutex
	paginator         pager.Paginator
	sorter            sorter.Sorter[T]
	searchTerm        string
	selectedTags      []string
	savedOrderByField string
	pageItems         []T
	allItems          []T
	params            map[string]any
	generation        uint64

	// notify is held from commit through OnAfterUpdate.
	notify   sync.Mutex
	inflight sync.WaitGroup
}

// New creates an ItemsSource fetching through f. No fetch happens until a
// mutator or Update is called.
func New[T any](f fetcher.Fetcher[T], opts ...Option[T]) *ItemsSource[T] {
	s := &ItemsSource[T]{
		fetcher:  f,
		listener: liststate.ListenerFuncs[T]{},
		logger:   zap.NewNop(),
		config:   liststate.NewConfig(),
		params:   map[string]any{},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.sorter = sorter.New(s.schema)

	state := s.config.DefaultState()
	if s.initial != nil {
		state = *s.initial
	}
	s.SetState(state)

	return s
}

// SetState (re)initializes pagination, sorting, search and tags from a
// persisted state. The page is not validated: the total count is only known
// after the next fetch.
func (s *ItemsSource[T]) SetState(state liststate.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	itemsPerPage := s.config.ClampPageSize(state.ItemsPerPage)
	s.paginator = pager.New(state.Page, itemsPerPage, s.paginator.TotalCount())
	s.sorter.SetField(state.OrderByField)
	s.sorter.SetReverse(state.OrderByReverse)
	s.savedOrderByField = s.sorter.Field()
	s.searchTerm = state.SearchTerm
	s.selectedTags = slices.Clone(state.Tags)
}

// GetState returns a snapshot of the source.
func (s *ItemsSource[T]) GetState() liststate.Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Paginator returns a copy of the current paginator, e.g. to build PageInfo.
func (s *ItemsSource[T]) Paginator() pager.Paginator {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.paginator
}

// UpdatePagination moves to another page and/or page size.
func (s *ItemsSource[T]) UpdatePagination(ctx context.Context, p Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevPage, prevItemsPerPage := s.paginator.Page(), s.paginator.ItemsPerPage()

	if p.ItemsPerPage != nil {
		itemsPerPage := *p.ItemsPerPage
		if s.config.MaxPageSize > 0 {
			itemsPerPage = min(itemsPerPage, s.config.MaxPageSize)
		}
		s.paginator.SetItemsPerPage(itemsPerPage)
	}

	if p.Page != nil {
		s.paginator.SetPage(*p.Page)
	}

	s.changedLocked(ctx, &liststate.Changes{
		Pagination: liststate.PaginationChanges{
			Page:         s.paginator.Page() != prevPage,
			ItemsPerPage: s.paginator.ItemsPerPage() != prevItemsPerPage,
		},
	})
}

// ToggleSorting selects field, or flips its direction when already selected.
// The field is remembered and restored when a search is cleared.
func (s *ItemsSource[T]) ToggleSorting(ctx context.Context, field string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sorter.ToggleField(field)
	s.savedOrderByField = s.sorter.Field()

	s.changedLocked(ctx, &liststate.Changes{Sorting: true})
}

// UpdateSearch sets the search term and goes back to the first page.
//
// While searching the sort field is cleared so results keep the relevance
// ranking of the server; clearing the search restores the last field chosen
// with ToggleSorting.
func (s *ItemsSource[T]) UpdateSearch(ctx context.Context, searchTerm string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchTerm = searchTerm
	if searchTerm == "" {
		s.sorter.SetField(s.savedOrderByField)
	} else {
		s.sorter.SetField("")
	}
	s.paginator.SetPage(1)

	s.changedLocked(ctx, &liststate.Changes{
		Search:     true,
		Pagination: liststate.PaginationChanges{Page: true},
	})
}

// UpdateSelectedTags sets the tag filter and goes back to the first page.
func (s *ItemsSource[T]) UpdateSelectedTags(ctx context.Context, tags []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedTags = slices.Clone(tags)
	s.paginator.SetPage(1)

	s.changedLocked(ctx, &liststate.Changes{
		Tags:       true,
		Pagination: liststate.PaginationChanges{Page: true},
	})
}

// Update forces a full refresh.
func (s *ItemsSource[T]) Update(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.changedLocked(ctx, nil)
}

// Wait blocks until every fetch started so far has finished and its
// listener callbacks have returned.
// It must not be called from a listener callback.
func (s *ItemsSource[T]) Wait() {
	s.inflight.Wait()
}

// changedLocked mints the next generation and starts the fetch for the
// current state. s.mu must be held.
func (s *ItemsSource[T]) changedLocked(ctx context.Context, changes *liststate.Changes) {
	s.generation++

	state := fetcher.State[T]{
		Paginator:    s.paginator,
		Sorter:       s.sorter,
		SearchTerm:   s.searchTerm,
		SelectedTags: slices.Clone(s.selectedTags),
	}
	fctx := liststate.NewFetchContext(s.generation, state.Persisted())
	before := s.snapshotLocked()

	s.inflight.Add(1)
	go s.fetch(ctx, changes, state, fctx, before)
}

func (s *ItemsSource[T]) fetch(
	ctx context.Context,
	changes *liststate.Changes,
	state fetcher.State[T],
	fctx *liststate.FetchContext,
	before liststate.Snapshot[T],
) {
	defer s.inflight.Done()

	logger := s.logger.With(
		zap.String("request_id", fctx.RequestID.String()),
		zap.Uint64("generation", fctx.Generation),
	)

	s.listener.OnBeforeUpdate(ctx, before)

	logger.Debug("fetching list items",
		zap.Bool("refresh", changes == nil),
		zap.Int("page", state.Paginator.Page()),
		zap.String("order", state.Sorter.Compiled()),
	)

	result, err := s.fetcher.Fetch(ctx, changes, state, fctx)
	if err != nil {
		logger.Warn("failed to fetch list items", zap.Error(err))
		s.listener.OnError(ctx, err)
		return
	}

	s.notify.Lock()
	defer s.notify.Unlock()

	after, ok := s.commit(state, fctx, result)
	if !ok {
		logger.Debug("discarding stale list items")
		return
	}

	logger.Debug("committed list items",
		zap.Int("items", len(after.PageItems)),
		zap.Int("total_count", after.TotalCount),
	)

	s.listener.OnAfterUpdate(ctx, after)
}

// commit stores the results of fctx unless a newer generation was minted.
// s.notify must be held.
func (s *ItemsSource[T]) commit(
	state fetcher.State[T],
	fctx *liststate.FetchContext,
	result *liststate.FetchResult[T],
) (liststate.Snapshot[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fctx.Generation != s.generation {
		return liststate.Snapshot[T]{}, false
	}

	pageItems := result.Results
	if limit := state.Paginator.ItemsPerPage(); len(pageItems) > limit {
		pageItems = pageItems[:limit]
	}

	s.pageItems = slices.Clone(pageItems)
	s.allItems = slices.Clone(result.AllResults)
	s.paginator.SetTotalCount(result.Count)
	maps.Copy(s.params, fctx.CustomParams())

	return s.snapshotLocked(), true
}

func (s *ItemsSource[T]) snapshotLocked() liststate.Snapshot[T] {
	return liststate.Snapshot[T]{
		State: liststate.State{
			Page:           s.paginator.Page(),
			ItemsPerPage:   s.paginator.ItemsPerPage(),
			OrderByField:   s.sorter.Field(),
			OrderByReverse: s.sorter.Reverse(),
			SearchTerm:     s.searchTerm,
			Tags:           slices.Clone(s.selectedTags),
		},
		TotalCount: s.paginator.TotalCount(),
		PageItems:  slices.Clone(s.pageItems),
		AllItems:   slices.Clone(s.allItems),
		Params:     maps.Clone(s.params),
	}
}
