// Package store is the persistence layer for influencer and credential
// data. It abstracts two interchangeable backends: an embedded SQLite file
// for local use and a networked PostgreSQL server selected by DATABASE_URL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spler/influencer-hub/internal/config"
)

type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) String() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// Store wraps a database handle with its placeholder dialect. The dialect is
// fixed when the store is opened, so call sites never carry a backend flag.
type Store struct {
	db      *sql.DB
	dialect Dialect
	logger  *zap.Logger
}

// Open selects the backend from configuration, connects, and runs the
// idempotent schema migration. A non-empty DATABASE_URL means Postgres;
// otherwise the SQLite file at cfg.Path is created as needed.
func Open(cfg config.DatabaseConfig, logger *zap.Logger) (*Store, error) {
	var (
		db      *sql.DB
		dialect Dialect
		err     error
	)

	if cfg.URL != "" {
		dsn := cfg.URL
		if !strings.Contains(dsn, "sslmode=") {
			joiner := "?"
			if strings.Contains(dsn, "?") {
				joiner = "&"
			}
			dsn = dsn + joiner + "sslmode=require"
		}
		db, err = sql.Open("postgres", dsn)
		dialect = DialectPostgres
	} else {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", mkErr)
			}
		}
		db, err = sql.Open("sqlite", cfg.Path)
		dialect = DialectSQLite
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dialect, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dialect, err)
	}

	s := &Store{db: db, dialect: dialect, logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Store opened",
		zap.String("backend", dialect.String()),
	)
	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rebind rewrites the universal `?` placeholder into the backend token.
// SQLite consumes `?` as-is; Postgres wants numbered `$n` parameters.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
