package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver string `split_words:"true" default:"sqlite"`
	DSN    string `split_words:"true" default:"file:support.db?_pragma=foreign_keys(1)"`
}

// Open connects to the backing database. The embedded sqlite driver is
// the default and is what tests run against; a Postgres DSN switches to
// pgdriver.
func Open(cfg Config) (*bun.DB, error) {
	driver := strings.TrimSpace(strings.ToLower(cfg.Driver))
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("store dsn is required")
	}

	switch driver {
	case DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		return bun.NewDB(sqldb, pgdialect.New()), nil
	case DriverSQLite, "":
		sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		// The orchestration layer is single-writer by design.
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}

// CreateSchema creates the customers and tickets tables if they do not
// exist yet.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*Customer)(nil),
		(*Ticket)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}

// Seed inserts the demo dataset when the customers table is empty.
func Seed(ctx context.Context, db *bun.DB) error {
	count, err := db.NewSelect().Model((*Customer)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("count customers: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	customers := []Customer{
		{Name: "Alice Johnson", Email: "alice.johnson@email.com", Phone: "555-0101", Status: CustomerActive, CreatedAt: now, UpdatedAt: now},
		{Name: "Bob Smith", Email: "bob.smith@email.com", Phone: "555-0102", Status: CustomerActive, CreatedAt: now, UpdatedAt: now},
		{Name: "Carol White", Email: "carol.white@email.com", Phone: "555-0103", Status: CustomerDisabled, CreatedAt: now, UpdatedAt: now},
		{Name: "David Lee", Email: "david.lee@email.com", Phone: "555-0104", Status: CustomerActive, CreatedAt: now, UpdatedAt: now},
		{Name: "Charlie Brown", Email: "charlie.brown@email.com", Phone: "555-0105", Status: CustomerActive, CreatedAt: now, UpdatedAt: now},
	}
	if _, err := db.NewInsert().Model(&customers).Exec(ctx); err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}

	tickets := []Ticket{
		{CustomerID: 1, Issue: "Cannot log in to account", Status: TicketOpen, Priority: PriorityMedium, CreatedAt: now.Add(-48 * time.Hour)},
		{CustomerID: 1, Issue: "Billing statement unclear", Status: TicketResolved, Priority: PriorityLow, CreatedAt: now.Add(-24 * time.Hour)},
		{CustomerID: 2, Issue: "Service outage reported", Status: TicketOpen, Priority: PriorityHigh, CreatedAt: now.Add(-12 * time.Hour)},
		{CustomerID: 4, Issue: "Feature request: export data", Status: TicketInProgress, Priority: PriorityLow, CreatedAt: now.Add(-6 * time.Hour)},
		{CustomerID: 5, Issue: "Password reset not arriving", Status: TicketOpen, Priority: PriorityMedium, CreatedAt: now.Add(-3 * time.Hour)},
	}
	if _, err := db.NewInsert().Model(&tickets).Exec(ctx); err != nil {
		return fmt.Errorf("seed tickets: %w", err)
	}
	return nil
}
