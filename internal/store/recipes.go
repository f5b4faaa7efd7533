package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/marnhus/skillet/internal/apperr"
	"github.com/marnhus/skillet/internal/models"
)

const recipeColumns = `id, title, photo, is_favorite, created_at, updated_at`

func scanRecipe(row interface{ Scan(...any) error }) (models.Recipe, error) {
	var r models.Recipe
	var photo sql.NullString
	if err := row.Scan(&r.ID, &r.Title, &photo, &r.IsFavorite, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return models.Recipe{}, err
	}
	if photo.Valid {
		r.Photo = &photo.String
	}
	return r, nil
}

func (s *Store) queryRecipes(query string, args ...any) ([]models.Recipe, error) {
	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list recipes: %w", err)
	}
	defer rows.Close()

	out := []models.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListRecipes returns every recipe, newest insertion first.
func (s *Store) ListRecipes() ([]models.Recipe, error) {
	return s.queryRecipes(`SELECT ` + recipeColumns + ` FROM recipes ORDER BY id DESC`)
}

// ListFavorites returns favorite recipes, most recently touched first.
func (s *Store) ListFavorites() ([]models.Recipe, error) {
	return s.queryRecipes(`SELECT ` + recipeColumns + ` FROM recipes WHERE is_favorite = 1 ORDER BY updated_at DESC`)
}

// CreateRecipe inserts a recipe with both timestamps set to now and
// returns the new id.
func (s *Store) CreateRecipe(title string, now int64) (int64, error) {
	res, err := s.conn.Exec(`INSERT INTO recipes (title, is_favorite, created_at, updated_at) VALUES (?, 0, ?, ?)`,
		title, now, now)
	if err != nil {
		return 0, fmt.Errorf("store: create recipe: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: create recipe id: %w", err)
	}
	return id, nil
}

// GetRecipe returns the recipe with the given id, or apperr.ErrNotFound.
func (s *Store) GetRecipe(id int64) (*models.Recipe, error) {
	row := s.conn.QueryRow(`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("store: get recipe: %w", err)
	}
	return &r, nil
}

// UpdateTitle sets a recipe's title and refreshes updated_at.
// Matching zero rows is not an error.
func (s *Store) UpdateTitle(id int64, title string, now int64) error {
	if _, err := s.conn.Exec(`UPDATE recipes SET title = ?, updated_at = ? WHERE id = ?`, title, now, id); err != nil {
		return fmt.Errorf("store: update title: %w", err)
	}
	return nil
}

// SetFavorite stores the favorite flag as 1/0 and refreshes updated_at.
// Matching zero rows is not an error.
func (s *Store) SetFavorite(id int64, favorite bool, now int64) error {
	flag := 0
	if favorite {
		flag = 1
	}
	if _, err := s.conn.Exec(`UPDATE recipes SET is_favorite = ?, updated_at = ? WHERE id = ?`, flag, now, id); err != nil {
		return fmt.Errorf("store: set favorite: %w", err)
	}
	return nil
}

// SetPhoto stores the uploaded photo filename and refreshes updated_at.
func (s *Store) SetPhoto(id int64, filename string, now int64) error {
	if _, err := s.conn.Exec(`UPDATE recipes SET photo = ?, updated_at = ? WHERE id = ?`, filename, now, id); err != nil {
		return fmt.Errorf("store: set photo: %w", err)
	}
	return nil
}

// ClearPhoto removes dangling references to a photo file that no
// longer exists on disk. Returns the number of recipes touched.
func (s *Store) ClearPhoto(filename string, now int64) (int64, error) {
	res, err := s.conn.Exec(`UPDATE recipes SET photo = NULL, updated_at = ? WHERE photo = ?`, now, filename)
	if err != nil {
		return 0, fmt.Errorf("store: clear photo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("store: clear photo rows: %w", err)
	}
	return n, nil
}

// DeleteRecipe deletes a recipe by id. Owned ingredients and
// instructions go with it via the schema's ON DELETE CASCADE.
// Matching zero rows is not an error.
func (s *Store) DeleteRecipe(id int64) error {
	if _, err := s.conn.Exec(`DELETE FROM recipes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete recipe: %w", err)
	}
	return nil
}
