// Package store persists serialized trees in SQLite under caller-chosen
// names. Documents are stored in the JSON interchange form, so anything
// saved here can be read back by any consumer of that format.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"mercator-hq/astral/pkg/ast"
	"mercator-hq/astral/pkg/asterrors"
)

// Config contains configuration for the SQLite tree store.
type Config struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() *Config {
	return &Config{
		Path:         "data/trees.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS trees (
	name       TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	document   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trees_kind ON trees(kind);
`

// Store is a named tree store backed by SQLite.
type Store struct {
	db      *sql.DB
	config  *Config
	logger  *slog.Logger
	metrics *metrics
}

// Entry describes one stored tree without its document body.
type Entry struct {
	Name      string
	Kind      ast.ASTKind
	UpdatedAt time.Time
}

// New opens or creates the store at the configured path. A nil config uses
// DefaultConfig.
func New(config *Config) (*Store, error) {
	if config == nil {
		config = DefaultConfig()
	}

	logger := slog.Default().With("component", "store.sqlite")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &Store{
		db:      db,
		config:  config,
		logger:  logger,
		metrics: storeMetrics(),
	}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("tree store initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)
	return s, nil
}

func (s *Store) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return fmt.Errorf("enable wal: %w", err)
		}
	}
	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Save serializes the node and stores it under the given name, replacing
// any previous document with that name.
func (s *Store) Save(ctx context.Context, name string, node ast.AST) error {
	document, err := ast.ToJSON(node)
	if err != nil {
		s.metrics.observe("save", "error")
		return err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trees (name, kind, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			kind = excluded.kind,
			document = excluded.document,
			updated_at = excluded.updated_at
	`, name, string(node.Kind()), document, now, now)
	if err != nil {
		s.metrics.observe("save", "error")
		return fmt.Errorf("save tree %q: %w", name, err)
	}

	s.metrics.observe("save", "ok")
	s.metrics.documentBytes.Observe(float64(len(document)))
	s.logger.Debug("tree saved", "name", name, "kind", node.Kind(), "bytes", len(document))
	return nil
}

// Load reads the named document and rebuilds the tree from it. A missing
// name fails with a key-kind error.
func (s *Store) Load(ctx context.Context, name string) (ast.AST, error) {
	var document string
	err := s.db.QueryRowContext(ctx,
		"SELECT document FROM trees WHERE name = ?", name).Scan(&document)
	if err == sql.ErrNoRows {
		s.metrics.observe("load", "missing")
		return nil, asterrors.Newf(asterrors.KindKey, "no tree named %q", name)
	}
	if err != nil {
		s.metrics.observe("load", "error")
		return nil, fmt.Errorf("load tree %q: %w", name, err)
	}

	node, err := ast.FromJSON([]byte(document))
	if err != nil {
		s.metrics.observe("load", "error")
		return nil, err
	}
	s.metrics.observe("load", "ok")
	return node, nil
}

// List returns the stored entries ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, kind, updated_at FROM trees ORDER BY name")
	if err != nil {
		s.metrics.observe("list", "error")
		return nil, fmt.Errorf("list trees: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.Name, &kind, &e.UpdatedAt); err != nil {
			s.metrics.observe("list", "error")
			return nil, fmt.Errorf("list trees: %w", err)
		}
		e.Kind = ast.ASTKind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		s.metrics.observe("list", "error")
		return nil, fmt.Errorf("list trees: %w", err)
	}
	s.metrics.observe("list", "ok")
	return entries, nil
}

// Delete removes the named document. A missing name fails with a key-kind
// error.
func (s *Store) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM trees WHERE name = ?", name)
	if err != nil {
		s.metrics.observe("delete", "error")
		return fmt.Errorf("delete tree %q: %w", name, err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		s.metrics.observe("delete", "error")
		return fmt.Errorf("delete tree %q: %w", name, err)
	}
	if count == 0 {
		s.metrics.observe("delete", "missing")
		return asterrors.Newf(asterrors.KindKey, "no tree named %q", name)
	}
	s.metrics.observe("delete", "ok")
	s.logger.Debug("tree deleted", "name", name)
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	s.logger.Info("tree store closed")
	return nil
}
