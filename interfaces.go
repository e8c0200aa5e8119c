// Package liststate holds the shared vocabulary of the list state-management
// subsystem: the persisted view of a list (State), the change flags that drive
// a refresh (Changes), the request handed to the transport (Request), and the
// ports the core consumes (Executor, Medium, Listener).
//
// The concrete pieces live in sub-packages:
//   - pager: page bounds and page slicing
//   - sorter: sort field/direction with the "-field" wire convention
//   - storage: persisting state to a query-string medium
//   - fetcher: plain (client-paginated) and paginated (server-paginated) fetchers
//   - source: the ItemsSource orchestrator driving a list view
//   - sqlboiler: an Executor backed by SQLBoiler query mods
package liststate

import "context"

// Executor performs the actual request for a list view. It is the only place
// where the core touches the network or a database.
//
// Type parameter T is the item type (e.g., *models.Dashboard).
//
// Example implementation:
//
//	type httpExecutor struct{ client *http.Client }
//
//	func (e *httpExecutor) Do(ctx context.Context, req liststate.Request, fctx *liststate.FetchContext) (*liststate.RawResponse[*Dashboard], error) {
//	    resp, err := e.client.Get("/api/dashboards?" + req.Values().Encode())
//	    ...
//	}
type Executor[T any] interface {
	// Do executes the request. Timeouts and retries, if any, belong here.
	Do(ctx context.Context, req Request, fctx *FetchContext) (*RawResponse[T], error)
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc[T any] func(ctx context.Context, req Request, fctx *FetchContext) (*RawResponse[T], error)

// Do calls f(ctx, req, fctx).
func (f ExecutorFunc[T]) Do(ctx context.Context, req Request, fctx *FetchContext) (*RawResponse[T], error) {
	return f(ctx, req, fctx)
}

// RequestBuilder decorates the request a fetcher derived from the list state.
// The state being fetched is available through fctx.State.
type RequestBuilder func(req Request, fctx *FetchContext) Request

// ResultProcessor transforms the raw results of a request, e.g. to wrap plain
// records into richer model values.
type ResultProcessor[T any] func(results []T, fctx *FetchContext) ([]T, error)

// Listener receives the lifecycle notifications of an ItemsSource.
//
// OnBeforeUpdate runs before a fetch starts with the state the fetch was
// minted from. OnAfterUpdate runs once the fetch results are committed; the
// results of a superseded fetch are dropped without it. Deliveries are
// serialized, so the last OnAfterUpdate always carries the committed state.
// OnError runs when a fetch fails, superseded or not.
type Listener[T any] interface {
	OnBeforeUpdate(ctx context.Context, state Snapshot[T])
	OnAfterUpdate(ctx context.Context, state Snapshot[T])
	OnError(ctx context.Context, err error)
}

// ListenerFuncs implements Listener with optional function fields.
// Nil fields are skipped.
type ListenerFuncs[T any] struct {
	BeforeUpdate func(ctx context.Context, state Snapshot[T])
	AfterUpdate  func(ctx context.Context, state Snapshot[T])
	Error        func(ctx context.Context, err error)
}

func (l ListenerFuncs[T]) OnBeforeUpdate(ctx context.Context, state Snapshot[T]) {
	if l.BeforeUpdate != nil {
		l.BeforeUpdate(ctx, state)
	}
}

func (l ListenerFuncs[T]) OnAfterUpdate(ctx context.Context, state Snapshot[T]) {
	if l.AfterUpdate != nil {
		l.AfterUpdate(ctx, state)
	}
}

func (l ListenerFuncs[T]) OnError(ctx context.Context, err error) {
	if l.Error != nil {
		l.Error(ctx, err)
	}
}

// Medium is a key/value store with query-string semantics used to persist
// list state, typically the query string of the current location.
type Medium interface {
	// Get returns the value stored under key and whether it is present.
	Get(key string) (string, bool)

	// Set writes all values at once. A nil value deletes the key.
	Set(values map[string]*string)
}
