// Package models holds a hand-written SQLBoiler model of the dashboards
// table, shaped like the code sqlboiler generates.
package models

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

// Dashboard is an object representing the database table.
type Dashboard struct {
	ID          string         `boil:"id" json:"id"`
	Name        string         `boil:"name" json:"name"`
	Description null.String    `boil:"description" json:"description,omitempty"`
	Tags        pq.StringArray `boil:"tags" json:"tags"`
	ViewCount   int            `boil:"view_count" json:"view_count"`
	CreatedAt   time.Time      `boil:"created_at" json:"created_at"`
}

var dialect = drivers.Dialect{
	LQ:                   '"',
	RQ:                   '"',
	UseIndexPlaceholders: true,
	UseDefaultKeyword:    true,
}

// NewQuery initializes a new Query using the passed in QueryMods.
func NewQuery(mods ...qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &dialect)
	qm.Apply(q, mods...)

	return q
}

// DashboardQuery is a query against the dashboards table.
type DashboardQuery struct {
	*queries.Query
}

// Dashboards returns a new query against the dashboards table.
func Dashboards(mods ...qm.QueryMod) DashboardQuery {
	mods = append(mods, qm.From(`"dashboards"`))
	q := NewQuery(mods...)
	if len(queries.GetSelect(q)) == 0 {
		queries.SetSelect(q, []string{`"dashboards".*`})
	}

	return DashboardQuery{q}
}

// All returns all Dashboard records from the query.
func (q DashboardQuery) All(ctx context.Context, exec boil.ContextExecutor) ([]*Dashboard, error) {
	var o []*Dashboard

	if err := q.Bind(ctx, exec, &o); err != nil {
		return nil, errors.Wrap(err, "models: failed to assign all query results to Dashboard slice")
	}

	return o, nil
}

// Count returns the count of all Dashboard records in the query.
func (q DashboardQuery) Count(ctx context.Context, exec boil.ContextExecutor) (int64, error) {
	var count int64

	queries.SetSelect(q.Query, nil)
	queries.SetCount(q.Query)

	if err := q.Query.QueryRowContext(ctx, exec).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "models: failed to count dashboards rows")
	}

	return count, nil
}
