// Package models defines the domain types for Skillet.
package models

// Recipe is the top-level aggregate: a title, an optional photo,
// a favorite flag, and millisecond-epoch timestamps.
type Recipe struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Photo      *string `json:"photo"`
	IsFavorite bool    `json:"is_favorite"`
	CreatedAt  int64   `json:"created_at"`
	UpdatedAt  int64   `json:"updated_at"`
}

// Ingredient is a named quantity+unit line item owned by one recipe.
type Ingredient struct {
	ID       int64   `json:"id"`
	RecipeID int64   `json:"recipe_id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Instruction is one ordered step of text owned by one recipe.
// StepNumber is assigned by the system, never by the caller.
type Instruction struct {
	ID         int64  `json:"id"`
	RecipeID   int64  `json:"recipe_id"`
	StepNumber int64  `json:"step_number"`
	Text       string `json:"text"`
}
