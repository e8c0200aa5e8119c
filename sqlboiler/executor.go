// Package sqlboiler provides a liststate.Executor backed by SQLBoiler queries.
//
// The executor turns a liststate.Request into query mods: the search term
// becomes an ILIKE filter over the search columns, the tags become an array
// overlap filter, the order becomes an ORDER BY clause and, for paginated
// requests, the page becomes LIMIT/OFFSET.
//
// Example usage:
//
//	executor := sqlboiler.NewExecutor(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Dashboard, error) {
//	        return models.Dashboards(mods...).All(ctx, db)
//	    },
//	    func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
//	        return models.Dashboards(mods...).Count(ctx, db)
//	    },
//	    sqlboiler.WithSortableColumns("name", "created_at"),
//	    sqlboiler.WithSearchColumns("name", "description"),
//	    sqlboiler.WithTagsColumn("tags"),
//	    sqlboiler.WithTiebreaker("id"),
//	)
//
//	src := source.New(fetcher.NewPaginated[*models.Dashboard](executor))
package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"

	"github.com/nrfta/liststate-go"
)

// QueryFunc executes a SQLBoiler query and returns results.
//
// Type parameter T is the SQLBoiler model type (e.g., *models.Dashboard).
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// CountFunc executes a SQLBoiler count query.
type CountFunc func(ctx context.Context, mods ...qm.QueryMod) (int64, error)

// Option configures the columns an Executor works with.
type Option func(*Columns)

// WithSortableColumns restricts ORDER BY to the given columns. Without it
// any field is accepted as a column name.
func WithSortableColumns(columns ...string) Option {
	return func(c *Columns) {
		c.Sortable = append(c.Sortable, columns...)
	}
}

// WithSearchColumns sets the columns matched by the search term.
func WithSearchColumns(columns ...string) Option {
	return func(c *Columns) {
		c.Search = append(c.Search, columns...)
	}
}

// WithTagsColumn sets the array column matched by the selected tags.
func WithTagsColumn(column string) Option {
	return func(c *Columns) {
		c.Tags = column
	}
}

// WithTiebreaker appends column to every ORDER BY so that pages are stable
// when the sort field has duplicates.
func WithTiebreaker(column string) Option {
	return func(c *Columns) {
		c.Tiebreaker = column
	}
}

// Executor implements liststate.Executor[T] for SQLBoiler queries.
type Executor[T any] struct {
	queryFunc QueryFunc[T]
	countFunc CountFunc
	columns   Columns
}

// NewExecutor creates an Executor. countFunc is only called for paginated
// requests; it may be nil for executors serving plain lists.
func NewExecutor[T any](queryFunc QueryFunc[T], countFunc CountFunc, opts ...Option) *Executor[T] {
	e := &Executor[T]{
		queryFunc: queryFunc,
		countFunc: countFunc,
	}

	for _, opt := range opts {
		opt(&e.columns)
	}

	return e
}

// Columns returns the columns the executor was configured with.
func (e *Executor[T]) Columns() Columns {
	return e.columns
}

// Do runs the query for req. Paginated requests are counted with the same
// filters; plain requests count the returned rows.
func (e *Executor[T]) Do(ctx context.Context, req liststate.Request, _ *liststate.FetchContext) (*liststate.RawResponse[T], error) {
	mods, err := RequestToQueryMods(req, e.columns)
	if err != nil {
		return nil, err
	}

	results, err := e.queryFunc(ctx, mods...)
	if err != nil {
		return nil, errors.Wrap(err, "query list items")
	}

	if req.PageSize <= 0 || e.countFunc == nil {
		return &liststate.RawResponse[T]{Results: results, Count: len(results)}, nil
	}

	count, err := e.countFunc(ctx, FilterQueryMods(req, e.columns)...)
	if err != nil {
		return nil, errors.Wrap(err, "count list items")
	}

	return &liststate.RawResponse[T]{Results: results, Count: int(count)}, nil
}
