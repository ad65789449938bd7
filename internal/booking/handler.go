package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dialastudent/stocktaker-intake/internal/observability/metrics"
	"github.com/dialastudent/stocktaker-intake/pkg/logging"
)

type Handler struct {
	store   *Store
	metrics *metrics.Metrics
	logger  *logging.Logger
}

func NewHandler(store *Store, m *metrics.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, metrics: m, logger: logger}
}

// BookedSlots returns live booking counts keyed by date then slot time,
// for clients rendering slot availability.
func (h *Handler) BookedSlots(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.Counts(r.Context())
	if err != nil {
		h.logger.Error("failed to load slot counts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load booked slots"})
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

type bookRequest struct {
	ApplicationID string `json:"applicationId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// Book reserves one interview slot. A full slot answers 409 so the
// client can refresh availability and offer another time.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if req.ApplicationID == "" || req.Date == "" || req.Time == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "applicationId, date and time are required"})
		return
	}

	bookingID, err := h.store.Book(r.Context(), req.ApplicationID, req.Date, req.Time)
	switch {
	case errors.Is(err, ErrInvalidSlot):
		h.metrics.RecordSlotBooking("invalid")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "That date and time cannot be booked"})
		return
	case errors.Is(err, ErrSlotFull):
		h.metrics.RecordSlotBooking("full")
		writeJSON(w, http.StatusConflict, map[string]string{"error": "That time slot is fully booked"})
		return
	case err != nil:
		h.metrics.RecordSlotBooking("error")
		h.logger.Error("failed to book slot", "error", err, "application_id", req.ApplicationID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to book slot"})
		return
	}

	h.metrics.RecordSlotBooking("success")
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"bookingId": bookingID,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
