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

type IngredientHandler struct {
	ingredients *store.IngredientStore
	hub         *ws.Hub
	logger      *slog.Logger
}

func NewIngredientHandler(is *store.IngredientStore, hub *ws.Hub, logger *slog.Logger) *IngredientHandler {
	return &IngredientHandler{ingredients: is, hub: hub, logger: logger}
}

// Add handles PUT /add_ingredient.
func (h *IngredientHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"new_ingredient"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "new_ingredient is required")
		return
	}

	ownerID := auth.UserID(r.Context())
	if err := h.ingredients.Add(req.Name, ownerID); err != nil {
		switch {
		case store.IsUniqueViolation(err):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Ingredient %s already exists", req.Name))
		case store.IsForeignKeyViolation(err):
			writeError(w, http.StatusUnauthorized, "Not logged in")
		default:
			h.logger.Error("add ingredient", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to add ingredient")
		}
		return
	}

	h.hub.Broadcast(ownerID, ws.NewMessage("ingredient", "created", req.Name))
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Ingredient %s added successfully", req.Name)})
}

// Delete handles DELETE /delete_ingredient/{name}. Pairings referencing the
// ingredient cascade away with it.
func (h *IngredientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ownerID := auth.UserID(r.Context())

	if err := h.ingredients.Delete(name, ownerID); err != nil {
		h.logger.Error("delete ingredient", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete ingredient")
		return
	}

	h.hub.Broadcast(ownerID, ws.NewMessage("ingredient", "deleted", name))
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Ingredient %s deleted successfully", name)})
}
