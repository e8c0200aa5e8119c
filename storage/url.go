package storage

import (
	"strconv"

	"github.com/nrfta/liststate-go"
	"github.com/nrfta/liststate-go/pager"
	"github.com/nrfta/liststate-go/sorter"
)

// Query-string parameters used by URLStateStorage.
const (
	ParamPage     = "page"
	ParamPageSize = "page_size"
	ParamOrder    = "order"
	ParamSearch   = "q"
)

// URLStateStorage persists the state of a list view in a query-string medium,
// so that the view can be shared or bookmarked.
//
// While a search term is present and no order is given explicitly, the view
// is not ordered: results keep the relevance ranking of the server.
//
// Example:
//
//	medium, _ := storage.NewQueryMedium("q=sales&page=2")
//	st := storage.NewURL(medium, liststate.NewConfig())
//	st.GetState() // page 2, search "sales", no ordering
type URLStateStorage struct {
	medium liststate.Medium
	config *liststate.Config
}

var _ StateStorage = (*URLStateStorage)(nil)

// NewURL creates a URLStateStorage over medium. A nil config uses liststate.NewConfig().
func NewURL(medium liststate.Medium, config *liststate.Config) *URLStateStorage {
	if config == nil {
		config = liststate.NewConfig()
	}

	return &URLStateStorage{
		medium: medium,
		config: config,
	}
}

func (s *URLStateStorage) GetState() liststate.State {
	state := s.config.DefaultState()

	searchTerm, _ := s.medium.Get(ParamSearch)
	state.SearchTerm = searchTerm

	defaultOrder := sorter.Compile(state.OrderByField, state.OrderByReverse)
	if searchTerm != "" {
		defaultOrder = ""
	}

	order, ok := s.medium.Get(ParamOrder)
	if !ok || order == "" {
		order = defaultOrder
	}
	state.OrderByField, state.OrderByReverse = sorter.Parse(order)

	if raw, ok := s.medium.Get(ParamPage); ok {
		if page := pager.ParseInt(raw, state.Page); page > 0 {
			state.Page = page
		}
	}

	if raw, ok := s.medium.Get(ParamPageSize); ok {
		if size := pager.ParseInt(raw, state.ItemsPerPage); size > 0 {
			state.ItemsPerPage = s.config.ClampPageSize(size)
		}
	}

	return state
}

func (s *URLStateStorage) SetState(state liststate.State) {
	page := strconv.Itoa(max(state.Page, 1))
	pageSize := strconv.Itoa(s.config.ClampPageSize(state.ItemsPerPage))

	s.medium.Set(map[string]*string{
		ParamPage:     &page,
		ParamPageSize: &pageSize,
		ParamOrder:    nonEmpty(sorter.Compile(state.OrderByField, state.OrderByReverse)),
		ParamSearch:   nonEmpty(state.SearchTerm),
	})
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
