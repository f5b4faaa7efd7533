package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Request bodies are validated declaratively before any storage
// access. Field checks run in a fixed order and only the first
// failure is reported, with a field-specific message.

// CreateRecipeRequest is the body for POST /recipes and PUT /recipes/{id}.
type CreateRecipeRequest struct {
	Title string `json:"title"`
}

// Validate checks the title after trimming whitespace.
func (r *CreateRecipeRequest) Validate() error {
	return validation.Validate(strings.TrimSpace(r.Title),
		validation.Required.Error("title is required"))
}

// TrimmedTitle returns the title with surrounding whitespace removed.
func (r *CreateRecipeRequest) TrimmedTitle() string {
	return strings.TrimSpace(r.Title)
}

// ToggleFavoriteRequest is the body for PATCH /recipes/{id}/favorite.
// The flag is boolean-ish: the single client sends true/false, but
// numbers and strings are coerced rather than rejected.
type ToggleFavoriteRequest struct {
	IsFavorite any `json:"isFavorite"`
}

// Favorite coerces the flag to a bool. false, 0, "", and null are
// false; everything else is true, including the strings "0" and
// "false".
func (r *ToggleFavoriteRequest) Favorite() bool {
	switch v := r.IsFavorite.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

// CreateIngredientRequest is the body for POST /recipes/{id}/ingredients.
// Quantity accepts a JSON number or a numeric string.
type CreateIngredientRequest struct {
	Name     string `json:"name"`
	Quantity any    `json:"quantity"`
	Unit     string `json:"unit"`
}

// Validate checks name, quantity, and unit in that order and reports
// only the first failing field.
func (r *CreateIngredientRequest) Validate() error {
	if err := validation.Validate(strings.TrimSpace(r.Name),
		validation.Required.Error("name is required")); err != nil {
		return err
	}
	if err := validation.Validate(r.Quantity, validation.By(numericQuantity)); err != nil {
		return err
	}
	return validation.Validate(strings.TrimSpace(r.Unit),
		validation.Required.Error("unit is required"))
}

// QuantityValue returns the quantity as a float64. Validate must have
// passed first.
func (r *CreateIngredientRequest) QuantityValue() float64 {
	f, _ := coerceFloat(r.Quantity)
	return f
}

func numericQuantity(v any) error {
	if _, err := coerceFloat(v); err != nil {
		return errors.New("quantity must be a number")
	}
	return nil
}

func coerceFloat(v any) (float64, error) {
	switch q := v.(type) {
	case float64:
		return q, nil
	case json.Number:
		return q.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(q), 64)
	default:
		return 0, errors.New("not a number")
	}
}

// CreateInstructionRequest is the body for POST /recipes/{id}/instructions.
type CreateInstructionRequest struct {
	Text string `json:"text"`
}

// Validate checks the step text after trimming whitespace.
func (r *CreateInstructionRequest) Validate() error {
	return validation.Validate(strings.TrimSpace(r.Text),
		validation.Required.Error("text is required"))
}

// TrimmedText returns the step text with surrounding whitespace removed.
func (r *CreateInstructionRequest) TrimmedText() string {
	return strings.TrimSpace(r.Text)
}
