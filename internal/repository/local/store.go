package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/reciperadar/reciperadar/internal/repository"
)

// Keys of the persisted entries. Each list key holds a JSON-serialized
// array of one entity kind; tokenKey holds the raw bearer token.
const (
	recipesKey   = "recipes"
	mealsKey     = "meals"
	groceriesKey = "groceries"
	tokenKey     = "auth_token"
)

// Store is the guest-session persistence layer: a single-file SQLite
// database holding one key-value table. It is a stateless translator;
// every operation reads and writes the full sequence for its kind.
type Store struct {
	db     *sql.DB
	logger *logrus.Logger
}

// Open opens the local database at path, creating the file and schema if
// needed.
func Open(path string, logger *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping local database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NewSet returns the guest-mode repository set backed by this store.
func NewSet(s *Store) repository.Set {
	return repository.Set{
		Recipes:   NewRecipeRepository(s),
		Meals:     NewMealRepository(s),
		Groceries: NewGroceryRepository(s),
	}
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) put(ctx context.Context, key string, list any) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return s.putRaw(ctx, key, string(raw))
}

func (s *Store) putRaw(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to persist %q: %w", key, err)
	}
	return nil
}

func (s *Store) delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Token returns the stored bearer token, or empty string when none is
// stored.
func (s *Store) Token() (string, error) {
	value, _, err := s.get(context.Background(), tokenKey)
	return value, err
}

// SetToken stores the bearer token.
func (s *Store) SetToken(token string) error {
	return s.putRaw(context.Background(), tokenKey, token)
}

// ClearToken removes the stored bearer token, if any.
func (s *Store) ClearToken() error {
	return s.delete(context.Background(), tokenKey)
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID produces a probabilistically-unique identifier from the
// current timestamp and a random base-36 suffix. Not globally unique, but
// collisions are negligible for single-user local use.
func GenerateID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + string(suffix)
}
