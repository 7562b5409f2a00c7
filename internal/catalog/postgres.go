package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"plan-advisor/pkg/plan"
)

// PostgresSource loads a carrier's packages from a Postgres table:
//
//	CREATE TABLE packages (
//	    id        SERIAL PRIMARY KEY,
//	    carrier   TEXT NOT NULL,
//	    name      TEXT NOT NULL,
//	    type      TEXT NOT NULL DEFAULT '',
//	    specs     JSONB NOT NULL,
//	    features  TEXT[] NOT NULL DEFAULT '{}'
//	);
//
// Rows are returned in id order so the catalog order, and with it the
// ranking tie-break, stays stable across calls.
type PostgresSource struct {
	db      *sql.DB
	carrier string
}

// NewPostgresSource creates a source over an existing connection pool.
func NewPostgresSource(db *sql.DB, carrier string) *PostgresSource {
	return &PostgresSource{db: db, carrier: carrier}
}

// OpenPostgres opens a connection pool for package storage.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}

func (s *PostgresSource) Carrier() string { return s.carrier }

func (s *PostgresSource) Packages(ctx context.Context) ([]plan.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, type, specs, features FROM packages WHERE carrier = $1 ORDER BY id`,
		s.carrier)
	if err != nil {
		return nil, fmt.Errorf("querying packages for %s: %w", s.carrier, err)
	}
	defer rows.Close()

	packages := make([]plan.Product, 0)
	for rows.Next() {
		var (
			product  plan.Product
			rawSpecs []byte
		)
		if err := rows.Scan(&product.Name, &product.Type, &rawSpecs, pq.Array(&product.Features)); err != nil {
			return nil, fmt.Errorf("scanning package row: %w", err)
		}
		if err := json.Unmarshal(rawSpecs, &product.Specs); err != nil {
			return nil, fmt.Errorf("parsing specs for %s: %w", product.Name, err)
		}
		product.Carrier = s.carrier
		packages = append(packages, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating package rows: %w", err)
	}
	return packages, nil
}
