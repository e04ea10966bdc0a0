package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"mealplan/internal/auth"
	"mealplan/internal/middleware"
	"mealplan/internal/store"
)

const sessionMaxAge = 90 * 24 * 60 * 60 // seconds, matches the store's expiry

type AuthHandler struct {
	users    *store.UserStore
	sessions *store.SessionStore
	logger   *slog.Logger
}

func NewAuthHandler(us *store.UserStore, ss *store.SessionStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: us, sessions: ss, logger: logger}
}

// Register handles PUT /add_user. The password is stored as a bcrypt hash,
// never as plaintext. A duplicate email is reported as its own case.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "invalid JSON", Success: false})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "Email and password are required", Success: false})
		return
	}

	existing, err := h.users.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("register lookup", "error", err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Message: "Internal error", Success: false})
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{
			Message: fmt.Sprintf("User %s already exists", req.Email),
			Success: false,
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Message: "Internal error", Success: false})
		return
	}

	if _, err := h.users.Create(req.Email, string(hash), req.FirstName, req.LastName); err != nil {
		// Lost a race with a concurrent registration for the same email.
		if store.IsUniqueViolation(err) {
			writeJSON(w, http.StatusBadRequest, statusResponse{
				Message: fmt.Sprintf("User %s already exists", req.Email),
				Success: false,
			})
			return
		}
		h.logger.Error("create user", "error", err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Message: "Internal error", Success: false})
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Message: fmt.Sprintf("User %s added successfully", req.Email),
		Success: true,
	})
}

// DeleteUser handles DELETE /delete_user. Sessions and all owned rows
// cascade away with the account.
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "invalid JSON", Success: false})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "Email is required", Success: false})
		return
	}

	existing, err := h.users.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("delete user lookup", "error", err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Message: "Internal error", Success: false})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{
			Message: fmt.Sprintf("User %s does not exist", req.Email),
			Success: false,
		})
		return
	}

	if err := h.users.Delete(req.Email); err != nil {
		h.logger.Error("delete user", "error", err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Message: "Internal error", Success: false})
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Message: fmt.Sprintf("User %s deleted successfully", req.Email),
		Success: true,
	})
}

type loginResponse struct {
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Login handles POST /login. An unknown email is an explicit case, not an
// index into a missing record, but the response does not reveal whether the
// email or the password was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "invalid JSON", Success: false})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "Email and password are required", Success: false})
		return
	}

	user, err := h.users.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Message: "Internal error", Success: false})
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "Invalid email or password", Success: false})
		return
	}

	sess, err := h.sessions.Create(user.ID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Message: "Internal error", Success: false})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	writeJSON(w, http.StatusOK, loginResponse{
		Message:   fmt.Sprintf("User %s logged in successfully", user.Email),
		Success:   true,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// Logout handles POST /logout. It always succeeds, even without an active
// session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID := auth.SessionID(r.Context()); sessionID != 0 {
		if err := h.sessions.Delete(sessionID); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	writeJSON(w, http.StatusOK, statusResponse{Message: "Logged out successfully", Success: true})
}
