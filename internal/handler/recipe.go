package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"mealplan/internal/auth"
	"mealplan/internal/store"
	ws "mealplan/internal/websocket"
)

type RecipeHandler struct {
	recipes     *store.RecipeStore
	ingredients *store.IngredientStore
	hub         *ws.Hub
	logger      *slog.Logger
}

func NewRecipeHandler(rs *store.RecipeStore, is *store.IngredientStore, hub *ws.Hub, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: rs, ingredients: is, hub: hub, logger: logger}
}

// ListAll handles GET /all_recipe_names.
func (h *RecipeHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	names, err := h.recipes.ListNames(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list recipe names", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// ListByCookbook handles GET /recipe_names/{cookbook}.
func (h *RecipeHandler) ListByCookbook(w http.ResponseWriter, r *http.Request) {
	names, err := h.recipes.ListNamesByCookbook(r.PathValue("cookbook"), auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list recipes by cookbook", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

type recipeInfoResponse struct {
	RecipeName   string   `json:"recipe_name"`
	CookbookName string   `json:"cookbook_name"`
	Servings     int      `json:"servings"`
	IsOnline     bool     `json:"is_online"`
	URL          string   `json:"url"`
	Ingredients  []string `json:"ingredients"`
}

// Info handles GET /recipe_info/{name}. A missing recipe returns the zero
// envelope rather than faulting on the absent row.
func (h *RecipeHandler) Info(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	name := r.PathValue("name")

	resp := recipeInfoResponse{Ingredients: []string{}}

	rec, err := h.recipes.Get(name, ownerID)
	if err != nil {
		h.logger.Error("get recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	ingredients, err := h.recipes.ListIngredients(rec.Name, ownerID)
	if err != nil {
		h.logger.Error("list recipe ingredients", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list ingredients")
		return
	}

	resp.RecipeName = rec.Name
	resp.CookbookName = rec.CookbookName
	resp.Servings = rec.Servings
	resp.IsOnline = rec.IsOnline
	resp.URL = rec.Webpage
	if ingredients != nil {
		resp.Ingredients = ingredients
	}
	writeJSON(w, http.StatusOK, resp)
}

// Check handles GET /check_recipe/{name}.
func (h *RecipeHandler) Check(w http.ResponseWriter, r *http.Request) {
	rec, err := h.recipes.Get(r.PathValue("name"), auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("check recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to check recipe")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"validity": rec != nil})
}

// Add handles PUT /add_recipe.
func (h *RecipeHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"new_recipe_name"`
		CookbookName string `json:"new_cookbook_name"`
		Servings     int    `json:"new_servings"`
		IsOnline     bool   `json:"new_is_online"`
		Webpage      string `json:"new_webpage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.CookbookName = strings.TrimSpace(req.CookbookName)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "new_recipe_name is required")
		return
	}
	if req.CookbookName == "" {
		writeError(w, http.StatusBadRequest, "new_cookbook_name is required")
		return
	}
	if req.Servings < 1 {
		writeError(w, http.StatusBadRequest, "new_servings must be a positive integer")
		return
	}

	ownerID := auth.UserID(r.Context())
	if _, err := h.recipes.Add(req.Name, req.CookbookName, req.Servings, req.IsOnline, req.Webpage, ownerID); err != nil {
		switch {
		case store.IsUniqueViolation(err):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Recipe %s already exists", req.Name))
		case store.IsForeignKeyViolation(err):
			writeError(w, http.StatusUnauthorized, "Not logged in")
		default:
			h.logger.Error("add recipe", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to add recipe")
		}
		return
	}

	h.hub.Broadcast(ownerID, ws.NewMessage("recipe", "created", req.Name))
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Recipe %s added successfully", req.Name)})
}

// Delete handles DELETE /delete_recipe/{name}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ownerID := auth.UserID(r.Context())

	if err := h.recipes.Delete(name, ownerID); err != nil {
		h.logger.Error("delete recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete recipe")
		return
	}

	h.hub.Broadcast(ownerID, ws.NewMessage("recipe", "deleted", name))
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Recipe %s deleted successfully", name)})
}

// AddPairing handles PUT /add_ingredient_recipe_pairing. Both endpoints must
// already exist in the owner's scope.
func (h *RecipeHandler) AddPairing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IngredientName string `json:"ingredient_name"`
		RecipeName     string `json:"recipe_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.IngredientName = strings.TrimSpace(req.IngredientName)
	req.RecipeName = strings.TrimSpace(req.RecipeName)
	if req.IngredientName == "" || req.RecipeName == "" {
		writeError(w, http.StatusBadRequest, "ingredient_name and recipe_name are required")
		return
	}

	ownerID := auth.UserID(r.Context())

	exists, err := h.ingredients.Exists(req.IngredientName, ownerID)
	if err != nil {
		h.logger.Error("check ingredient", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add pairing")
		return
	}
	if !exists {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Ingredient %s does not exist", req.IngredientName))
		return
	}

	if err := h.recipes.AddPairing(req.IngredientName, req.RecipeName, ownerID); err != nil {
		switch {
		case store.IsUniqueViolation(err):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Ingredient %s is already paired with recipe %s", req.IngredientName, req.RecipeName))
		case store.IsForeignKeyViolation(err):
			// The ingredient was pre-checked, so the broken reference is the
			// recipe.
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Recipe %s does not exist", req.RecipeName))
		default:
			h.logger.Error("add pairing", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to add pairing")
		}
		return
	}

	h.hub.Broadcast(ownerID, ws.NewMessage("recipe", "updated", req.RecipeName))
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Ingredient %s paired with recipe %s successfully", req.IngredientName, req.RecipeName),
	})
}
