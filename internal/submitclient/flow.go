package submitclient

import (
	"context"
	"sync"

	"github.com/dialastudent/stocktaker-intake/internal/session"
	"github.com/dialastudent/stocktaker-intake/pkg/logging"
)

// Flow drives the final submission: one application POST, then a
// secondary slot reservation when an interview was chosen, then clearing
// the persisted session. A submission already in flight refuses to start
// another, which is what keeps double-submit out (the server has no
// idempotency of its own).
type Flow struct {
	client *Client
	store  session.Store
	logger *logging.Logger

	mu       sync.Mutex
	inFlight bool
}

func NewFlow(client *Client, store session.Store, logger *logging.Logger) *Flow {
	if logger == nil {
		logger = logging.Default()
	}
	return &Flow{client: client, store: store, logger: logger}
}

// InFlight reports whether a submission is running; the UI disables the
// submit control while it is.
func (f *Flow) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

// Run submits the application. On failure the persisted session is left
// untouched so the applicant loses nothing; on success it is cleared.
func (f *Flow) Run(ctx context.Context, userID string, values map[string]string) (*ApplyResponse, error) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return nil, &APIError{Message: "submission already in progress"}
	}
	f.inFlight = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight = false
		f.mu.Unlock()
	}()

	resp, err := f.client.Apply(ctx, userID, values)
	if err != nil {
		return nil, err
	}

	date, slot := values["interviewDate"], values["interviewTime"]
	if resp.ApplicationID != "" && date != "" && slot != "" {
		err := f.client.BookSlot(ctx, BookSlotRequest{
			ApplicationID: resp.ApplicationID,
			Date:          date,
			Time:          slot,
		})
		if err != nil {
			return nil, err
		}
	}

	if f.store != nil {
		if err := f.store.Clear(); err != nil {
			// The application went through; a leftover session file is
			// only a nuisance.
			f.logger.Warn("failed to clear session after submit", "error", err)
		}
	}
	return resp, nil
}
