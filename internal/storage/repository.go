package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"billtrack/internal/core"
	applog "billtrack/internal/log"

	_ "modernc.org/sqlite"
)

// BlobKey is the fixed key the serialized expense collection lives under.
// There is exactly one blob; every save rewrites it whole.
const BlobKey = "expenses"

// SQLiteStore persists the expense collection as a single JSON blob in a
// key-value table. Last full write wins; there is no incremental persistence.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads and decodes the full collection. A missing blob yields an empty
// collection. Malformed records are dropped here, at the load boundary, with
// a warning each; aggregation never sees them.
func (s *SQLiteStore) Load(ctx context.Context) ([]core.Expense, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM blobs WHERE key = ?`, BlobKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", BlobKey, err)
	}

	records, rejects, err := core.DecodeCollection([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("decode blob %s: %w", BlobKey, err)
	}
	for _, rej := range rejects {
		slog.WarnContext(ctx, "Dropping malformed expense record", applog.FieldError, rej)
	}

	slog.InfoContext(ctx, "Expenses loaded",
		applog.FieldCount, len(records),
		applog.FieldDropped, len(rejects))
	return records, nil
}

// Save re-encodes the full collection and replaces the stored blob.
// All-or-nothing; a failure leaves the previous blob in place.
func (s *SQLiteStore) Save(ctx context.Context, records []core.Expense) error {
	data, err := core.EncodeCollection(records)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		BlobKey, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write blob %s: %w", BlobKey, err)
	}

	slog.InfoContext(ctx, "Expenses saved", applog.FieldCount, len(records))
	return nil
}
