package fetcher

import (
	"slices"

	"github.com/aarondl/null/v8"

	"github.com/nrfta/liststate-go"
)

// PaginatedListFetcher delegates paging, sorting and filtering to the
// executor. Every fetch is a round-trip; nothing is cached.
//
// Requests carry page, page_size, order, q and tags.
type PaginatedListFetcher[T any] struct {
	*ItemsFetcher[T]
}

var _ Fetcher[any] = (*PaginatedListFetcher[any])(nil)

// NewPaginated creates a PaginatedListFetcher.
func NewPaginated[T any](executor liststate.Executor[T], opts ...Option[T]) *PaginatedListFetcher[T] {
	return &PaginatedListFetcher[T]{
		ItemsFetcher: newItemsFetcher(executor, paginatedRequest[T], opts),
	}
}

func paginatedRequest[T any](state State[T]) liststate.Request {
	return liststate.Request{
		Page:     state.Paginator.Page(),
		PageSize: state.Paginator.ItemsPerPage(),
		Order:    state.Sorter.Compiled(),
		Q:        searchParam(state.SearchTerm),
		Tags:     slices.Clone(state.SelectedTags),
	}
}

func searchParam(searchTerm string) null.String {
	return null.NewString(searchTerm, searchTerm != "")
}
