package session

import (
	"sync"
	"time"

	"github.com/dialastudent/stocktaker-intake/pkg/logging"
)

// DefaultSaveWindow is how long edits are coalesced before one write.
const DefaultSaveWindow = time.Second

// SaveScheduler coalesces rapid form edits into a single durable write.
// Mark schedules a save after the window elapses; marks arriving inside
// the window ride along with the pending write. Flush forces a pending
// write out immediately, which the client calls on teardown.
type SaveScheduler struct {
	store  Store
	source func() Snapshot
	window time.Duration
	logger *logging.Logger

	mu     sync.Mutex
	timer  *time.Timer
	dirty  bool
	closed bool
}

// NewSaveScheduler builds a scheduler around store. source produces the
// snapshot to persist at fire time, so the write always captures the
// latest state rather than the state at Mark time.
func NewSaveScheduler(store Store, source func() Snapshot, window time.Duration, logger *logging.Logger) *SaveScheduler {
	if window <= 0 {
		window = DefaultSaveWindow
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SaveScheduler{
		store:  store,
		source: source,
		window: window,
		logger: logger,
	}
}

// Mark records that state changed and arms the save window if idle.
func (s *SaveScheduler) Mark() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.dirty = true
	if s.timer != nil {
		return
	}
	s.timer = time.AfterFunc(s.window, s.fire)
}

func (s *SaveScheduler) fire() {
	s.mu.Lock()
	s.timer = nil
	if !s.dirty || s.closed {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	snap := s.source()
	s.mu.Unlock()

	s.write(snap)
}

// Discard drops any pending write without saving. Called when the
// durable copy has just been deleted and must stay deleted.
func (s *SaveScheduler) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.dirty = false
}

// Flush writes any pending state immediately.
func (s *SaveScheduler) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	snap := s.source()
	s.mu.Unlock()

	s.write(snap)
}

// Close flushes pending state and stops the scheduler.
func (s *SaveScheduler) Close() {
	s.Flush()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *SaveScheduler) write(snap Snapshot) {
	snap.LastSaved = time.Now().UTC()
	if err := s.store.Save(snap); err != nil {
		// Storage trouble must never interrupt the applicant.
		s.logger.Warn("session save failed", "error", err)
	}
}
