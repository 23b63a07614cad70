package builder

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/agentic-research/rssg/internal/importfind"
	"github.com/agentic-research/rssg/internal/rssgerr"
)

// Cache is the supplemented incremental build cache (spec.md §8): a
// sqlite-backed table keyed on (path, content hash) holding the module
// name and import tokens pass one would otherwise re-derive by re-parsing
// an unchanged file. A cache miss is never an error — it just means the
// file goes through the normal tree-sitter path.
type Cache struct {
	db *sql.DB

	// inFlight deduplicates concurrent Store calls for the same (path,
	// hash) pair: the first call claims the key with a fresh uuid and
	// writes; a call that finds the key already claimed returns nil
	// without writing. The stored uuid is not read back.
	inFlight sync.Map // key -> uuid.UUID
}

// OpenCache opens (creating if needed) a sqlite database at path and
// ensures the cache table exists.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, rssgerr.Wrap(rssgerr.IoError, err)
	}
	const ddl = `CREATE TABLE IF NOT EXISTS build_cache (
		path TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		module_name TEXT NOT NULL,
		tokens_json TEXT NOT NULL,
		PRIMARY KEY (path, content_hash)
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, rssgerr.Wrap(rssgerr.IoError, err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying sqlite connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func cacheKey(path, hash string) string {
	return path + "\x00" + hash
}

// Lookup returns the cached module name and import tokens for (path,
// hash), or ok=false on a miss.
func (c *Cache) Lookup(ctx context.Context, path, hash string) (string, []importfind.Token, bool, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT module_name, tokens_json FROM build_cache WHERE path = ? AND content_hash = ?`,
		path, hash)

	var moduleName, tokensJSON string
	if err := row.Scan(&moduleName, &tokensJSON); err != nil {
		if err == sql.ErrNoRows {
			return "", nil, false, nil
		}
		return "", nil, false, rssgerr.Wrap(rssgerr.IoError, err)
	}

	var tokens []importfind.Token
	if err := json.Unmarshal([]byte(tokensJSON), &tokens); err != nil {
		return "", nil, false, rssgerr.Wrap(rssgerr.DecodeError, err)
	}
	return moduleName, tokens, true, nil
}

// Store records (path, hash) -> (moduleName, tokens), skipping the write
// if another in-flight call already claimed this key.
func (c *Cache) Store(ctx context.Context, path, hash, moduleName string, tokens []importfind.Token) error {
	key := cacheKey(path, hash)
	token := uuid.New()
	if _, loaded := c.inFlight.LoadOrStore(key, token); loaded {
		return nil
	}
	defer c.inFlight.Delete(key)

	tokensJSON, err := json.Marshal(tokens)
	if err != nil {
		return rssgerr.Wrap(rssgerr.DecodeError, err)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO build_cache (path, content_hash, module_name, tokens_json) VALUES (?, ?, ?, ?)`,
		path, hash, moduleName, string(tokensJSON))
	if err != nil {
		return rssgerr.Wrap(rssgerr.IoError, fmt.Errorf("cache store %s: %w", path, err))
	}
	return nil
}
