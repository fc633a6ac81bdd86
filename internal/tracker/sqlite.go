package tracker

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

// SQLiteStore implements Store on a single SQLite table. All rows are loaded
// at open; updates are buffered and written in one transaction per Flush.
type SQLiteStore struct {
	db   *sql.DB
	path string

	mu      sync.RWMutex
	entries map[string]string
	// pending holds unflushed updates; a nil value marks a delete.
	pending map[string]*string
	closed  bool
}

// OpenSQLite opens (creating if needed) the tracker database at dbPath.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, storeErr(err, "could not open hash database", dbPath)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{
		db:      db,
		path:    dbPath,
		entries: make(map[string]string),
		pending: make(map[string]*string),
	}
	if err := store.initialize(ctx); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, storeErr(err, "failed to initialize hash database", dbPath)
	}
	if err := store.load(ctx); err != nil {
		_ = db.Close()
		return nil, storeErr(err, "failed to load hash database", dbPath)
	}
	return store, nil
}

func (s *SQLiteStore) initialize(ctx context.Context) error {
	schema := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS hashes (
		key TEXT PRIMARY KEY,
		hash TEXT NOT NULL
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *SQLiteStore) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "SELECT key, hash FROM hashes")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key, hash string
		if err := rows.Scan(&key, &hash); err != nil {
			return err
		}
		s.entries[key] = hash
	}
	return rows.Err()
}

// Get implements Store.
func (s *SQLiteStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.entries[key]
	return hash, ok
}

// Set implements Store.
func (s *SQLiteStore) Set(key, hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = hash
	s.pending[key] = &hash
}

// Delete implements Store.
func (s *SQLiteStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	s.pending[key] = nil
}

// Keys implements Store.
func (s *SQLiteStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.entries)
}

// Flush implements Store. On failure the pending updates are kept so a later
// Flush can retry them.
func (s *SQLiteStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(ctx)
}

func (s *SQLiteStore) flushLocked(ctx context.Context) error {
	if s.closed {
		return errors.StoreError("hash database is closed").WithContext("path", s.path).Build()
	}
	if len(s.pending) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(err, "failed to begin hash database transaction", s.path)
	}
	for _, key := range sortedKeys(s.pending) {
		if hash := s.pending[key]; hash != nil {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO hashes (key, hash) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET hash = excluded.hash",
				key, *hash,
			)
		} else {
			_, err = tx.ExecContext(ctx, "DELETE FROM hashes WHERE key = ?", key)
		}
		if err != nil {
			_ = tx.Rollback()
			return storeErr(err, "failed to write hash database", s.path)
		}
	}
	if err := tx.Commit(); err != nil {
		return storeErr(err, "failed to commit hash database", s.path)
	}

	clear(s.pending)
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	flushErr := s.flushLocked(context.Background())
	s.closed = true
	if err := s.db.Close(); err != nil && flushErr == nil {
		return storeErr(err, "failed to close hash database", s.path)
	}
	return flushErr
}

func storeErr(err error, msg, path string) error {
	return errors.WrapError(err, errors.CategoryStore, msg).
		Fatal().
		WithContext("path", path).
		Build()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
