package store

import (
	"fmt"

	"github.com/marnhus/skillet/internal/models"
)

// ListIngredients returns a recipe's ingredients in insertion order.
func (s *Store) ListIngredients(recipeID int64) ([]models.Ingredient, error) {
	rows, err := s.conn.Query(`SELECT id, recipe_id, name, quantity, unit FROM ingredients WHERE recipe_id = ? ORDER BY id ASC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("store: list ingredients: %w", err)
	}
	defer rows.Close()

	out := []models.Ingredient{}
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.Name, &ing.Quantity, &ing.Unit); err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// CreateIngredient inserts an ingredient and returns the full record.
// The referenced recipe's existence is not verified.
func (s *Store) CreateIngredient(recipeID int64, name string, quantity float64, unit string) (*models.Ingredient, error) {
	res, err := s.conn.Exec(`INSERT INTO ingredients (recipe_id, name, quantity, unit) VALUES (?, ?, ?, ?)`,
		recipeID, name, quantity, unit)
	if err != nil {
		return nil, fmt.Errorf("store: create ingredient: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: create ingredient id: %w", err)
	}
	return &models.Ingredient{
		ID:       id,
		RecipeID: recipeID,
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
	}, nil
}

// DeleteIngredient deletes an ingredient by id. Matching zero rows is
// not an error.
func (s *Store) DeleteIngredient(id int64) error {
	if _, err := s.conn.Exec(`DELETE FROM ingredients WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete ingredient: %w", err)
	}
	return nil
}

// ListInstructions returns a recipe's instructions ordered by step.
func (s *Store) ListInstructions(recipeID int64) ([]models.Instruction, error) {
	rows, err := s.conn.Query(`SELECT id, recipe_id, step_number, text FROM instructions WHERE recipe_id = ? ORDER BY step_number ASC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("store: list instructions: %w", err)
	}
	defer rows.Close()

	out := []models.Instruction{}
	for rows.Next() {
		var ins models.Instruction
		if err := rows.Scan(&ins.ID, &ins.RecipeID, &ins.StepNumber, &ins.Text); err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	return out, rows.Err()
}

// CreateInstruction appends an instruction with the next step number
// for the recipe. The max read and the insert run in one transaction
// so concurrent creates for the same recipe cannot claim the same
// step number.
func (s *Store) CreateInstruction(recipeID int64, text string) (*models.Instruction, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	var step int64
	if err := tx.QueryRow(`SELECT COALESCE(MAX(step_number), 0) + 1 FROM instructions WHERE recipe_id = ?`, recipeID).Scan(&step); err != nil {
		return nil, fmt.Errorf("store: next step number: %w", err)
	}

	res, err := tx.Exec(`INSERT INTO instructions (recipe_id, step_number, text) VALUES (?, ?, ?)`,
		recipeID, step, text)
	if err != nil {
		return nil, fmt.Errorf("store: create instruction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: create instruction id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return &models.Instruction{
		ID:         id,
		RecipeID:   recipeID,
		StepNumber: step,
		Text:       text,
	}, nil
}

// DeleteInstruction deletes an instruction by id without renumbering
// the remaining steps; gaps persist. Matching zero rows is not an error.
func (s *Store) DeleteInstruction(id int64) error {
	if _, err := s.conn.Exec(`DELETE FROM instructions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete instruction: %w", err)
	}
	return nil
}
