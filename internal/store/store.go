// Package store provides SQLite-backed persistence for recipes,
// ingredients, and instructions.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/marnhus/skillet/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS recipes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL,
	photo      TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ingredients (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
	name      TEXT NOT NULL,
	quantity  REAL NOT NULL,
	unit      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS instructions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	recipe_id   INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
	step_number INTEGER NOT NULL,
	text        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ingredients_recipe ON ingredients(recipe_id);
CREATE INDEX IF NOT EXISTS idx_instructions_recipe ON instructions(recipe_id);
`

// RecipeStore defines the persistence operations used by the service
// and MCP layers. Consumers should depend on this interface rather
// than the concrete *Store type to facilitate testing with mocks.
type RecipeStore interface {
	ListRecipes() ([]models.Recipe, error)
	ListFavorites() ([]models.Recipe, error)
	CreateRecipe(title string, now int64) (int64, error)
	GetRecipe(id int64) (*models.Recipe, error)
	UpdateTitle(id int64, title string, now int64) error
	SetFavorite(id int64, favorite bool, now int64) error
	SetPhoto(id int64, filename string, now int64) error
	ClearPhoto(filename string, now int64) (int64, error)
	DeleteRecipe(id int64) error
	ListIngredients(recipeID int64) ([]models.Ingredient, error)
	CreateIngredient(recipeID int64, name string, quantity float64, unit string) (*models.Ingredient, error)
	DeleteIngredient(id int64) error
	ListInstructions(recipeID int64) ([]models.Instruction, error)
	CreateInstruction(recipeID int64, text string) (*models.Instruction, error)
	DeleteInstruction(id int64) error
	Close() error
}

// Verify *Store satisfies RecipeStore at compile time.
var _ RecipeStore = (*Store)(nil)

// Store wraps a sql.DB with recipe-specific operations.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
// Schema creation and the favorite-column migration are best-effort:
// failures are logged but never abort startup, so the store works
// against both fresh and previously-created database files.
func Open(dsn string) (*Store, error) {
	// _txlock=immediate makes Begin take the write lock up front, so
	// concurrent writers queue on the busy timeout instead of failing
	// with a deferred-transaction upgrade conflict.
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		slog.Warn("store: apply schema failed", slog.String("error", err.Error()))
	}
	migrateFavoriteColumn(conn)
	return &Store{conn: conn}, nil
}

// migrateFavoriteColumn adds the is_favorite column to a possibly
// pre-existing recipes table. A duplicate-column failure means the
// column is already there and is swallowed; anything else is logged.
func migrateFavoriteColumn(conn *sql.DB) {
	_, err := conn.Exec(`ALTER TABLE recipes ADD COLUMN is_favorite INTEGER NOT NULL DEFAULT 0`)
	if err == nil {
		return
	}
	if strings.Contains(err.Error(), "duplicate column name") {
		slog.Debug("store: is_favorite column already present")
		return
	}
	slog.Warn("store: favorite column migration failed", slog.String("error", err.Error()))
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
