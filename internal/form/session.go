// Package form implements the multi-step application form: an explicit
// state machine over enumerated steps, with per-field validation, touched
// tracking, and snapshot persistence.
package form

import (
	"github.com/dialastudent/stocktaker-intake/internal/session"
)

// Session owns all form state. Input primitives and views read from it;
// every mutation goes through Set, Blur, Next, Prev, Restore, or Reset.
type Session struct {
	step    Step
	values  map[string]string
	errors  map[string]string
	touched map[string]bool
	onDirty func()
}

// NewSession returns a session at step one with default field values.
func NewSession() *Session {
	return &Session{
		step:    FirstStep,
		values:  Defaults(),
		errors:  make(map[string]string),
		touched: make(map[string]bool),
	}
}

// OnDirty registers a hook invoked after any state change, used to drive
// the debounced session save.
func (s *Session) OnDirty(fn func()) {
	s.onDirty = fn
}

func (s *Session) markDirty() {
	if s.onDirty != nil {
		s.onDirty()
	}
}

// Step returns the active step.
func (s *Session) Step() Step { return s.step }

// Value returns the current value of a field.
func (s *Session) Value(name string) string { return s.values[name] }

// Values returns a copy of all field values.
func (s *Session) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Error returns the validation message for a field, empty when valid.
func (s *Session) Error(name string) string { return s.errors[name] }

// Touched reports whether the applicant has interacted with the field.
func (s *Session) Touched(name string) bool { return s.touched[name] }

// Set applies an edit to a field. The raw input is normalized through the
// field's spec (character filter, then length clamp). Validation failures
// never block typing; they are recorded on blur and before step advance.
func (s *Session) Set(name, raw string) {
	spec, ok := Lookup(name)
	if !ok {
		return
	}
	change, ok := spec.Apply(raw)
	if !ok {
		return
	}
	prev := s.values[name]
	s.values[name] = change.Value

	// Typing clears a stale inline error for the field.
	delete(s.errors, name)

	s.applyDependents(name, prev, change.Value)
	s.markDirty()
}

// applyDependents clears fields whose relevance hangs off the changed one.
func (s *Session) applyDependents(name, prev, value string) {
	switch name {
	case "howHeard":
		if value != "Other" {
			s.clearField("otherHowHeard")
		}
	case "interviewDate":
		if value != prev {
			s.clearField("interviewTime")
		}
	}
}

func (s *Session) clearField(name string) {
	s.values[name] = ""
	delete(s.errors, name)
	delete(s.touched, name)
}

// Blur marks the field touched and records its format error, if any.
func (s *Session) Blur(name string) {
	if _, ok := Lookup(name); !ok {
		return
	}
	s.touched[name] = true
	if msg := s.validateField(name); msg != "" {
		s.errors[name] = msg
	} else {
		delete(s.errors, name)
	}
	s.markDirty()
}

// Reset returns the form to a fresh state. It does not fire the dirty
// hook: reset accompanies deleting the persisted copy, and notifying the
// save scheduler here would write a defaults snapshot straight back.
func (s *Session) Reset() {
	s.step = FirstStep
	s.values = Defaults()
	s.errors = make(map[string]string)
	s.touched = make(map[string]bool)
}

// Snapshot captures the state the session store persists.
func (s *Session) Snapshot() session.Snapshot {
	return session.Snapshot{
		Step:     int(s.step),
		FormData: s.Values(),
	}
}

// Restore rebuilds session state from a persisted snapshot. An out-of-range
// step or missing data falls back to a fresh form; unknown field names in
// the snapshot are dropped.
func (s *Session) Restore(snap *session.Snapshot) {
	s.step = FirstStep
	s.values = Defaults()
	s.errors = make(map[string]string)
	s.touched = make(map[string]bool)

	if snap == nil || snap.FormData == nil {
		return
	}
	if step := Step(snap.Step); step.Valid() {
		s.step = step
	} else {
		return
	}
	for name, value := range snap.FormData {
		if spec, ok := Lookup(name); ok {
			normalized, _ := spec.Normalize(value, 0)
			s.values[name] = normalized
		}
	}
}
