package intake

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dialastudent/stocktaker-intake/internal/observability/metrics"
	"github.com/dialastudent/stocktaker-intake/pkg/logging"
)

// Notifier sends the applicant a confirmation after a successful
// submission. Delivery is best effort and never blocks the response.
type Notifier interface {
	ApplicationReceived(ctx context.Context, email, name, applicationID string) error
}

type Handler struct {
	store    *Store
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

func NewHandler(store *Store, notifier Notifier, m *metrics.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, notifier: notifier, metrics: m, logger: logger}
}

type submitRequest struct {
	UserID   string         `json:"userId"`
	FormData map[string]any `json:"formData"`
}

// Submit stores the application for an authenticated user. The response
// body mirrors what the form client expects: {"success": true} or an
// {"error": ...} object.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	start := time.Now()
	_, err := h.store.SaveSubmission(r.Context(), req.UserID, req.FormData)
	h.metrics.ObserveSubmissionDuration(time.Since(start))
	if err != nil {
		h.saveFailed(w, req.UserID, err)
		return
	}
	h.metrics.RecordSubmission("success")

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Application saved",
	})
}

// Apply stores the application and returns its reference id, which the
// client quotes when booking an interview slot.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	start := time.Now()
	applicationID, err := h.store.SaveSubmission(r.Context(), req.UserID, req.FormData)
	h.metrics.ObserveSubmissionDuration(time.Since(start))
	if err != nil {
		h.saveFailed(w, req.UserID, err)
		return
	}
	h.metrics.RecordSubmission("success")

	h.confirm(req, applicationID)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"applicationId": applicationID,
		"message":       "Application received",
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (submitRequest, bool) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return req, false
	}
	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return req, false
	}
	if req.FormData == nil {
		req.FormData = map[string]any{}
	}
	return req, true
}

func (h *Handler) saveFailed(w http.ResponseWriter, userID string, err error) {
	if errors.Is(err, ErrUnknownUser) {
		h.metrics.RecordSubmission("unknown_user")
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		return
	}
	h.metrics.RecordSubmission("error")
	h.logger.Error("failed to save application", "error", err, "user_id", userID)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to save application"})
}

// confirm emails the applicant in the background so SMTP latency never
// shows up in the request path.
func (h *Handler) confirm(req submitRequest, applicationID string) {
	if h.notifier == nil {
		return
	}
	email, _ := req.FormData["email"].(string)
	if email == "" {
		return
	}
	name, _ := req.FormData["firstnames"].(string)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := h.notifier.ApplicationReceived(ctx, email, name, applicationID); err != nil {
			h.logger.Warn("confirmation email failed", "error", err, "application_id", applicationID)
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
