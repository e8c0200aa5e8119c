package liststate

import "fmt"

// Connection is a Relay-style view of the current page of a list.
// It provides both edges (with cursors) and nodes (direct access).
//
// Type parameter T is the rendered item type.
type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	Nodes    []T       `json:"nodes"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// Edge is one item of a Connection with its cursor.
type Edge[T any] struct {
	Cursor string `json:"cursor"`
	Node   T      `json:"node"`
}

// BuildConnection creates a Connection from the page items of a snapshot.
//
// Type parameters:
//   - From: item type held by the list source
//   - To: rendered type (e.g., a GraphQL model)
//
// Example usage:
//
//	p := src.Paginator()
//	conn, err := liststate.BuildConnection(
//	    src.GetState(),
//	    p.PageInfo(),
//	    p.EdgeCursor,
//	    func(d *models.Dashboard) (*gql.Dashboard, error) { return toGQL(d), nil },
//	)
func BuildConnection[From any, To any](
	snapshot Snapshot[From],
	pageInfo PageInfo,
	cursorEncoder func(index int) string,
	transform func(From) (To, error),
) (*Connection[To], error) {
	items := snapshot.PageItems
	conn := &Connection[To]{
		Nodes:    make([]To, 0, len(items)),
		Edges:    make([]Edge[To], 0, len(items)),
		PageInfo: pageInfo,
	}

	for i, item := range items {
		transformed, err := transform(item)
		if err != nil {
			return nil, fmt.Errorf("transform item at index %d: %w", i, err)
		}

		conn.Nodes = append(conn.Nodes, transformed)
		conn.Edges = append(conn.Edges, Edge[To]{
			Cursor: cursorEncoder(i),
			Node:   transformed,
		})
	}

	return conn, nil
}
