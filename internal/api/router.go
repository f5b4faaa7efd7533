package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/marnhus/skillet/internal/recipeservice"
	"github.com/marnhus/skillet/internal/uploads"
)

// NewRouter creates a chi router with every API route mounted.
// Cross-origin requests are permitted from any origin.
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(svc *recipeservice.Service, photos *uploads.Dir, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, photos)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	// Plain text status string for the root path.
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Skillet recipe service is running"))
	})

	// Recipes CRUD.
	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", h.ListRecipes)
		r.Post("/", h.CreateRecipe)
		r.Get("/favorites", h.ListFavorites)
		r.Get("/{id}", h.GetRecipe)
		r.Put("/{id}", h.UpdateTitle)
		r.Patch("/{id}/favorite", h.ToggleFavorite)
		r.Delete("/{id}", h.DeleteRecipe)
		r.Post("/{id}/photo", h.UploadPhoto)
		r.Get("/{id}/ingredients", h.ListIngredients)
		r.Post("/{id}/ingredients", h.CreateIngredient)
		r.Get("/{id}/instructions", h.ListInstructions)
		r.Post("/{id}/instructions", h.CreateInstruction)
	})

	// Child records are deleted by their own ids.
	r.Delete("/ingredients/{id}", h.DeleteIngredient)
	r.Delete("/instructions/{id}", h.DeleteInstruction)

	// Uploaded photos served back by filename.
	r.Get("/uploads/{filename}", h.ServePhoto)

	// SSE change events.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
