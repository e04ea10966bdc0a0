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

type CookbookHandler struct {
	cookbooks *store.CookbookStore
	recipes   *store.RecipeStore
	hub       *ws.Hub
	logger    *slog.Logger
}

func NewCookbookHandler(cs *store.CookbookStore, rs *store.RecipeStore, hub *ws.Hub, logger *slog.Logger) *CookbookHandler {
	return &CookbookHandler{cookbooks: cs, recipes: rs, hub: hub, logger: logger}
}

// ListNames handles GET /cookbook_names. Anonymous requests see an empty
// owner scope and get an empty list.
func (h *CookbookHandler) ListNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.cookbooks.ListNames(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list cookbook names", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list cookbooks")
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

type cookbookInfoResponse struct {
	Validity     bool     `json:"validity"`
	CookbookName string   `json:"cookbook_name"`
	Online       bool     `json:"online"`
	Message      string   `json:"message"`
	URL          string   `json:"url"`
	Recipes      []string `json:"recipes"`
}

// Info handles GET /cookbook_info/{name}. A cookbook that does not exist in
// the owner's scope yields validity:false with zero values, not an error.
func (h *CookbookHandler) Info(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	name := r.PathValue("name")

	resp := cookbookInfoResponse{Recipes: []string{}}

	cb, err := h.cookbooks.Get(name, ownerID)
	if err != nil {
		h.logger.Error("get cookbook", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get cookbook")
		return
	}
	if cb == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	recipes, err := h.recipes.ListNamesByCookbook(cb.Name, ownerID)
	if err != nil {
		h.logger.Error("list cookbook recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}

	resp.Validity = true
	resp.CookbookName = cb.Name
	if recipes != nil {
		resp.Recipes = recipes
	}
	if cb.IsBook {
		resp.Message = "Physical book"
	} else {
		resp.Online = true
		resp.Message = "Online cookbook"
		resp.URL = cb.Website
	}
	writeJSON(w, http.StatusOK, resp)
}

// Add handles PUT /add_cookbook.
func (h *CookbookHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"new_cookbook_name"`
		IsBook  bool   `json:"new_is_book"`
		Website string `json:"new_website"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "new_cookbook_name is required")
		return
	}

	ownerID := auth.UserID(r.Context())
	if _, err := h.cookbooks.Add(req.Name, req.IsBook, req.Website, ownerID); err != nil {
		switch {
		case store.IsUniqueViolation(err):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Cookbook %s already exists", req.Name))
		case store.IsForeignKeyViolation(err):
			// The owner row is the only foreign key here, so this is an
			// anonymous write.
			writeError(w, http.StatusUnauthorized, "Not logged in")
		default:
			h.logger.Error("add cookbook", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to add cookbook")
		}
		return
	}

	h.hub.Broadcast(ownerID, ws.NewMessage("cookbook", "created", req.Name))
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Cookbook %s added successfully", req.Name)})
}

// Delete handles DELETE /delete_cookbook/{name}. Deleting a name that is not
// there reports success anyway; the listing state is what the caller cares
// about.
func (h *CookbookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ownerID := auth.UserID(r.Context())

	if err := h.cookbooks.Delete(name, ownerID); err != nil {
		h.logger.Error("delete cookbook", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete cookbook")
		return
	}

	h.hub.Broadcast(ownerID, ws.NewMessage("cookbook", "deleted", name))
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Cookbook %s deleted successfully", name)})
}
