package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/viewgen/viewgen/internal/ctxlog"
)

// Dir resolves the cache directory. Priority: the explicit override
// (typically the --cache-dir flag), then VIEWGEN_CACHE_DIR, then the
// user cache directory.
func Dir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv("VIEWGEN_CACHE_DIR"); env != "" {
		return env, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve user cache directory: %w", err)
	}
	return filepath.Join(base, "viewgen"), nil
}

// Hash returns the content key for a source file.
func Hash(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// Cache is a handle to the generation store.
type Cache struct {
	db *sql.DB
}

// Open opens (and if needed creates) the store under dir.
func Open(ctx context.Context, dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, "viewgen.db"))
	if err != nil {
		return nil, fmt.Errorf("cannot open cache database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Cache opened.", "dir", dir)
	return &Cache{db: db}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached output for a source file at the given content
// hash. ok is false on a miss.
func (c *Cache) Lookup(ctx context.Context, path, hash string) (output []byte, ok bool, err error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT output FROM generations WHERE source_path = ? AND source_hash = ?`, path, hash)
	if err := row.Scan(&output); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache lookup failed: %w", err)
	}
	return output, true, nil
}

// Store records the output for a source file, replacing any entry for an
// older hash of the same path.
func (c *Cache) Store(ctx context.Context, path, hash string, output []byte) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO generations (source_path, source_hash, output)
		VALUES (?, ?, ?)
		ON CONFLICT (source_path) DO UPDATE SET
			source_hash = excluded.source_hash,
			output      = excluded.output,
			created_at  = datetime('now')`,
		path, hash, output)
	if err != nil {
		return fmt.Errorf("cache store failed: %w", err)
	}
	return nil
}

// migrations contains the ordered list of schema changes to apply.
var migrations = []string{
	`CREATE TABLE generations (
		source_path TEXT PRIMARY KEY,
		source_hash TEXT NOT NULL,
		output      BLOB NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("checking schema_version: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("initializing schema version: %w", err)
		}
	}

	var current int
	if err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := tx.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("updating schema version to %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}
	return nil
}
