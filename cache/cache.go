// Package cache persists serialized code bodies in SQLite so that a program
// whose source has not changed does not need to be parsed again.
//
// Entries are keyed by the SHA-256 of the source text. A row written by a
// different format version is a miss. A row that fails to decode is evicted
// and the decode error is returned to the caller; it is never served.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	goerrors "errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/wippyai/masm/ast"
	"github.com/wippyai/masm/errors"
	"github.com/wippyai/masm/opcode"
)

// FormatVersion is stored with every row. Bump it when the body encoding
// changes in a way older readers cannot decode.
const FormatVersion = 1

const schema = `CREATE TABLE IF NOT EXISTS bodies (
	key        TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	data       BLOB NOT NULL,
	created_at INTEGER NOT NULL
)`

// Cache is a SQLite-backed store of encoded bodies. It is safe for
// concurrent use.
type Cache struct {
	db   *sql.DB
	path string
}

// Open opens or creates the cache database at path.
func Open(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "open cache database")
	}
	// A single connection serializes writers and keeps pragmas in effect.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "set busy timeout")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "create schema")
	}

	Logger().Debug("cache opened", zap.String("path", path))
	return &Cache{db: db, path: path}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Key returns the cache key for a source text.
func Key(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Put stores the encoded body for source, replacing any existing entry.
func (c *Cache) Put(ctx context.Context, source []byte, body []ast.Node) error {
	data, err := ast.EncodeBody(body)
	if err != nil {
		return err
	}
	return c.putRaw(ctx, Key(source), FormatVersion, data)
}

func (c *Cache) putRaw(ctx context.Context, key string, version int, data []byte) error {
	_, err := c.db.ExecContext(ctx, `INSERT INTO bodies (key, version, data, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			data = excluded.data,
			created_at = excluded.created_at`,
		key, version, data, time.Now().Unix())
	if err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "store body "+key)
	}
	return nil
}

// Get returns the cached body for source. A miss reports ok=false with a nil
// error.
func (c *Cache) Get(ctx context.Context, source []byte) ([]ast.Node, bool, error) {
	key := Key(source)

	var (
		version int
		data    []byte
	)
	err := c.db.QueryRowContext(ctx, "SELECT version, data FROM bodies WHERE key = ?", key).
		Scan(&version, &data)
	if goerrors.Is(err, sql.ErrNoRows) {
		Logger().Debug("cache miss", zap.String("key", key))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "load body "+key)
	}

	if version != FormatVersion {
		Logger().Debug("cache version mismatch",
			zap.String("key", key), zap.Int("version", version), zap.Int("want", FormatVersion))
		return nil, false, nil
	}

	body, err := ast.DecodeBody(data)
	if err != nil {
		fields := []zap.Field{zap.String("key", key), zap.Error(err)}
		if tag, ok := opcode.InvalidTag(err); ok {
			fields = append(fields, zap.Uint8("tag", tag))
		}
		Logger().Warn("evicting undecodable cache entry", fields...)
		if derr := c.deleteKey(ctx, key); derr != nil {
			Logger().Warn("evict cache entry", zap.String("key", key), zap.Error(derr))
		}
		return nil, false, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "decode cached body "+key)
	}

	Logger().Debug("cache hit", zap.String("key", key), zap.Int("nodes", len(body)))
	return body, true, nil
}

// Delete removes the entry for source, if any.
func (c *Cache) Delete(ctx context.Context, source []byte) error {
	return c.deleteKey(ctx, Key(source))
}

func (c *Cache) deleteKey(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM bodies WHERE key = ?", key); err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "delete body "+key)
	}
	return nil
}

// Len returns the number of stored entries.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bodies").Scan(&n); err != nil {
		return 0, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "count bodies")
	}
	return n, nil
}

// Path returns the database path the cache was opened with.
func (c *Cache) Path() string {
	return c.path
}

func (c *Cache) String() string {
	return fmt.Sprintf("cache(%s)", c.path)
}
