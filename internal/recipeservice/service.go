// Package recipeservice coordinates storage and upload operations.
package recipeservice

import (
	"context"
	"io"
	"time"

	"github.com/marnhus/skillet/internal/models"
	"github.com/marnhus/skillet/internal/store"
	"github.com/marnhus/skillet/internal/uploads"
)

// Event kinds published after successful mutations.
const (
	EventCreated      = "recipe.created"
	EventUpdated      = "recipe.updated"
	EventDeleted      = "recipe.deleted"
	EventPhoto        = "recipe.photo"
	EventPhotoRemoved = "photo.removed"
)

// EventPublisher receives recipe change notifications. A nil publisher
// disables publication.
type EventPublisher interface {
	PublishRecipeEvent(kind string, recipeID int64)
}

// Service coordinates store and upload-area operations.
type Service struct {
	store  store.RecipeStore
	photos *uploads.Dir
	events EventPublisher
}

// NewService creates a new recipe service. events may be nil.
func NewService(st store.RecipeStore, photos *uploads.Dir, events EventPublisher) *Service {
	return &Service{store: st, photos: photos, events: events}
}

func (s *Service) publish(kind string, recipeID int64) {
	if s.events != nil {
		s.events.PublishRecipeEvent(kind, recipeID)
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// ListRecipes returns every recipe, newest first.
func (s *Service) ListRecipes(_ context.Context) ([]models.Recipe, error) {
	return s.store.ListRecipes()
}

// ListFavorites returns favorite recipes, most recently touched first.
func (s *Service) ListFavorites(_ context.Context) ([]models.Recipe, error) {
	return s.store.ListFavorites()
}

// CreateRecipe persists a new recipe with both timestamps set to now.
// The title must already be validated and trimmed.
func (s *Service) CreateRecipe(_ context.Context, title string) (*models.Recipe, error) {
	now := nowMillis()
	id, err := s.store.CreateRecipe(title, now)
	if err != nil {
		return nil, err
	}
	s.publish(EventCreated, id)
	return &models.Recipe{ID: id, Title: title, CreatedAt: now, UpdatedAt: now}, nil
}

// GetRecipe returns a single recipe or apperr.ErrNotFound.
func (s *Service) GetRecipe(_ context.Context, id int64) (*models.Recipe, error) {
	return s.store.GetRecipe(id)
}

// UpdateTitle sets a new title and refreshes updated_at.
func (s *Service) UpdateTitle(_ context.Context, id int64, title string) error {
	if err := s.store.UpdateTitle(id, title, nowMillis()); err != nil {
		return err
	}
	s.publish(EventUpdated, id)
	return nil
}

// SetFavorite stores the favorite flag. An update matching zero rows
// still succeeds.
func (s *Service) SetFavorite(_ context.Context, id int64, favorite bool) error {
	if err := s.store.SetFavorite(id, favorite, nowMillis()); err != nil {
		return err
	}
	s.publish(EventUpdated, id)
	return nil
}

// DeleteRecipe deletes a recipe; the schema cascades to its
// ingredients and instructions.
func (s *Service) DeleteRecipe(_ context.Context, id int64) error {
	if err := s.store.DeleteRecipe(id); err != nil {
		return err
	}
	s.publish(EventDeleted, id)
	return nil
}

// AttachPhoto stores an uploaded photo on disk under a
// timestamp-prefixed name, points the recipe at it, and returns the
// stored filename. A previously attached photo file stays on disk.
func (s *Service) AttachPhoto(_ context.Context, id int64, originalName string, src io.Reader) (string, error) {
	now := nowMillis()
	stored, err := s.photos.Save(originalName, src, now)
	if err != nil {
		return "", err
	}
	if err := s.store.SetPhoto(id, stored, now); err != nil {
		return "", err
	}
	s.publish(EventPhoto, id)
	return stored, nil
}

// ListIngredients returns a recipe's ingredients in insertion order.
func (s *Service) ListIngredients(_ context.Context, recipeID int64) ([]models.Ingredient, error) {
	return s.store.ListIngredients(recipeID)
}

// CreateIngredient attaches an ingredient to a recipe id. The recipe's
// existence is not verified.
func (s *Service) CreateIngredient(_ context.Context, recipeID int64, name string, quantity float64, unit string) (*models.Ingredient, error) {
	ing, err := s.store.CreateIngredient(recipeID, name, quantity, unit)
	if err != nil {
		return nil, err
	}
	s.publish(EventUpdated, recipeID)
	return ing, nil
}

// DeleteIngredient deletes an ingredient by id.
func (s *Service) DeleteIngredient(_ context.Context, id int64) error {
	return s.store.DeleteIngredient(id)
}

// ListInstructions returns a recipe's instructions ordered by step.
func (s *Service) ListInstructions(_ context.Context, recipeID int64) ([]models.Instruction, error) {
	return s.store.ListInstructions(recipeID)
}

// CreateInstruction appends an instruction with the next step number.
func (s *Service) CreateInstruction(_ context.Context, recipeID int64, text string) (*models.Instruction, error) {
	ins, err := s.store.CreateInstruction(recipeID, text)
	if err != nil {
		return nil, err
	}
	s.publish(EventUpdated, recipeID)
	return ins, nil
}

// DeleteInstruction deletes an instruction by id. Remaining steps keep
// their numbers; gaps persist.
func (s *Service) DeleteInstruction(_ context.Context, id int64) error {
	return s.store.DeleteInstruction(id)
}
