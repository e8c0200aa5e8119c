package liststate

// PageInfo contains metadata about the page a list view is showing.
// It uses function fields so that values are only computed when a rendering
// layer (e.g. a GraphQL resolver) asks for them.
type PageInfo struct {
	TotalCount      func() (*int, error)
	TotalPages      func() (int, error)
	HasPreviousPage func() (bool, error)
	HasNextPage     func() (bool, error)
	StartCursor     func() (*string, error)
	EndCursor       func() (*string, error)
}

// NewEmptyPageInfo returns an empty instance of PageInfo. Useful before the
// first fetch of a list view has completed.
func NewEmptyPageInfo() *PageInfo {
	return &PageInfo{
		TotalCount:      func() (*int, error) { return nil, nil },
		TotalPages:      func() (int, error) { return 0, nil },
		StartCursor:     func() (*string, error) { return nil, nil },
		EndCursor:       func() (*string, error) { return nil, nil },
		HasNextPage:     func() (bool, error) { return false, nil },
		HasPreviousPage: func() (bool, error) { return false, nil },
	}
}

