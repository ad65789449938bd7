package users

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dialastudent/stocktaker-intake/pkg/logging"
)

type Handler struct {
	store  *Store
	logger *logging.Logger
}

func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// GET /api/users/{userID}/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	u, err := h.store.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("user status lookup failed", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch user status")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if u == nil {
		// Absence is a normal outcome, not an error path.
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"exists": false})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"exists": true,
		"user":   u,
	})
}

// POST /api/users/upsert
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    string `json:"userId"`
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	u := User{ID: req.UserID, Email: req.Email, FirstName: req.FirstName, LastName: req.LastName}
	if err := h.store.Upsert(r.Context(), u); err != nil {
		h.logger.Error("user upsert failed", "error", err, "user_id", req.UserID)
		writeError(w, http.StatusInternalServerError, "Failed to save user")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
