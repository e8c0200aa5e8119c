// Package testutil starts the PostgreSQL container used by the integration
// suites and seeds it with dashboards.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Container represents a running PostgreSQL testcontainer with the
// dashboards table created.
type Container struct {
	Container *postgres.PostgresContainer
	DB        *sql.DB
	ConnStr   string
}

// SetupPostgres starts a PostgreSQL container with initialized tables.
func SetupPostgres(ctx context.Context) (*Container, error) {
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start PostgreSQL container")
	}

	c := &Container{Container: pgContainer}

	c.ConnStr, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, errors.Wrap(err, "failed to get connection string")
	}

	c.DB, err = sql.Open("postgres", c.ConnStr)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := c.DB.PingContext(ctx); err != nil {
		_ = c.Terminate(ctx)
		return nil, errors.Wrap(err, "failed to ping database")
	}

	if err := createTables(ctx, c.DB); err != nil {
		_ = c.Terminate(ctx)
		return nil, errors.Wrap(err, "failed to create tables")
	}

	return c, nil
}

// Terminate stops and removes the PostgreSQL container.
func (c *Container) Terminate(ctx context.Context) error {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Container != nil {
		return c.Container.Terminate(ctx)
	}
	return nil
}

// Reset removes every seeded row.
func (c *Container) Reset(ctx context.Context) error {
	_, err := c.DB.ExecContext(ctx, "TRUNCATE dashboards")
	return err
}

func createTables(ctx context.Context, db *sql.DB) error {
	schema := `
		CREATE TABLE dashboards (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			description TEXT,
			tags TEXT[] NOT NULL DEFAULT '{}',
			view_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE INDEX idx_dashboards_name ON dashboards(name, id);
		CREATE INDEX idx_dashboards_created_at ON dashboards(created_at DESC, id);
		CREATE INDEX idx_dashboards_tags ON dashboards USING GIN (tags);
	`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// DashboardTags are assigned round-robin by SeedDashboards.
var DashboardTags = []string{"finance", "ops", "sales"}

// SeedDashboards inserts count dashboards named "Dashboard 01".."Dashboard NN"
// and returns their IDs in insertion order.
//
// Dashboard i gets tag DashboardTags[i%3], view count i*10 and is created i
// hours after the first one. Every fifth dashboard has a "quarterly report"
// description.
func SeedDashboards(ctx context.Context, db *sql.DB, count int) ([]string, error) {
	ids := make([]string, count)
	start := time.Now().Add(-time.Duration(count) * time.Hour)

	for i := 0; i < count; i++ {
		id := uuid.New().String()

		var description sql.NullString
		if i%5 == 0 {
			description = sql.NullString{String: "quarterly report", Valid: true}
		}

		_, err := db.ExecContext(ctx, `
			INSERT INTO dashboards (id, name, description, tags, view_count, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			id,
			fmt.Sprintf("Dashboard %02d", i+1),
			description,
			pq.Array([]string{DashboardTags[i%len(DashboardTags)]}),
			i*10,
			start.Add(time.Duration(i)*time.Hour),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to seed dashboard %d", i)
		}

		ids[i] = id
	}

	return ids, nil
}
