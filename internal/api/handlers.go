// Package api implements the Skillet REST API using chi.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marnhus/skillet/internal/apperr"
	"github.com/marnhus/skillet/internal/recipeservice"
	"github.com/marnhus/skillet/internal/uploads"
)

// Handler holds API route handlers.
type Handler struct {
	svc    *recipeservice.Service
	photos *uploads.Dir
}

// NewHandler creates a new Handler.
func NewHandler(svc *recipeservice.Service, photos *uploads.Dir) *Handler {
	return &Handler{svc: svc, photos: photos}
}

// idParam extracts the {id} URL parameter as an int64.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// ListRecipes handles GET /recipes.
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListRecipes(r.Context())
	if err != nil {
		slog.Error("list recipes failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// ListFavorites handles GET /recipes/favorites.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListFavorites(r.Context())
	if err != nil {
		slog.Error("list favorites failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// CreateRecipe handles POST /recipes.
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req CreateRecipeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	rec, err := h.svc.CreateRecipe(r.Context(), req.TrimmedTitle())
	if err != nil {
		slog.Error("create recipe failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": rec.ID, "title": rec.Title})
}

// GetRecipe handles GET /recipes/{id}.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid recipe id"))
		return
	}
	rec, err := h.svc.GetRecipe(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("recipe not found"))
			return
		}
		slog.Error("get recipe failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// UpdateTitle handles PUT /recipes/{id}.
func (h *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid recipe id"))
		return
	}
	var req CreateRecipeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := h.svc.UpdateTitle(r.Context(), id, req.TrimmedTitle()); err != nil {
		slog.Error("update title failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, successBody())
}

// ToggleFavorite handles PATCH /recipes/{id}/favorite. An update
// matching zero rows still reports success.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid recipe id"))
		return
	}
	var req ToggleFavoriteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.SetFavorite(r.Context(), id, req.Favorite()); err != nil {
		slog.Error("toggle favorite failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, successBody())
}

// DeleteRecipe handles DELETE /recipes/{id}. Ingredients and
// instructions cascade at the storage layer.
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid recipe id"))
		return
	}
	if err := h.svc.DeleteRecipe(r.Context(), id); err != nil {
		slog.Error("delete recipe failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, successBody())
}

// ListIngredients handles GET /recipes/{id}/ingredients.
func (h *Handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid recipe id"))
		return
	}
	items, err := h.svc.ListIngredients(r.Context(), id)
	if err != nil {
		slog.Error("list ingredients failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateIngredient handles POST /recipes/{id}/ingredients.
func (h *Handler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid recipe id"))
		return
	}
	var req CreateIngredientRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	ing, err := h.svc.CreateIngredient(r.Context(), id, req.Name, req.QuantityValue(), req.Unit)
	if err != nil {
		slog.Error("create ingredient failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusCreated, ing)
}

// DeleteIngredient handles DELETE /ingredients/{id}.
func (h *Handler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid ingredient id"))
		return
	}
	if err := h.svc.DeleteIngredient(r.Context(), id); err != nil {
		slog.Error("delete ingredient failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, successBody())
}

// ListInstructions handles GET /recipes/{id}/instructions.
func (h *Handler) ListInstructions(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid recipe id"))
		return
	}
	steps, err := h.svc.ListInstructions(r.Context(), id)
	if err != nil {
		slog.Error("list instructions failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, steps)
}

// CreateInstruction handles POST /recipes/{id}/instructions. The step
// number is assigned by the storage layer, never by the caller.
func (h *Handler) CreateInstruction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid recipe id"))
		return
	}
	var req CreateInstructionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	ins, err := h.svc.CreateInstruction(r.Context(), id, req.TrimmedText())
	if err != nil {
		slog.Error("create instruction failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusCreated, ins)
}

// DeleteInstruction handles DELETE /instructions/{id}. Remaining steps
// are not renumbered.
func (h *Handler) DeleteInstruction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid instruction id"))
		return
	}
	if err := h.svc.DeleteInstruction(r.Context(), id); err != nil {
		slog.Error("delete instruction failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, successBody())
}
