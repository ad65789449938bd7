// Package field defines the form input primitives. A primitive never owns
// its value; it normalizes candidate input and hands the result to the
// form session through a Change.
package field

import (
	"regexp"
	"sync"

	"github.com/dialastudent/stocktaker-intake/pkg/logging"
)

// Kind identifies the control type backing a field.
type Kind string

const (
	Text     Kind = "text"
	Email    Kind = "email"
	Tel      Kind = "tel"
	Date     Kind = "date"
	Radio    Kind = "radio"
	Select   Kind = "select"
	TextArea Kind = "textarea"
)

// Option is one choice of a radio or select control.
type Option struct {
	Value string
	Label string
}

// Spec describes a single form control and its input constraints.
type Spec struct {
	Kind        Kind
	Label       string
	Name        string
	Required    bool
	MaxLength   int
	Pattern     string // full-match format check, applied on blur
	Filter      string // character class stripped from input as typed
	Options     []Option
	Placeholder string
	Rows        int
	Disabled    bool
}

// Change carries a normalized edit to the owner of the form state.
type Change struct {
	Name  string
	Value string
}

var (
	logger = logging.Default()

	regexpCache sync.Map // pattern string -> *regexp.Regexp, nil for invalid
)

// SetLogger overrides the package logger (used by the intake client to
// share its configured logger).
func SetLogger(l *logging.Logger) {
	if l != nil {
		logger = l
	}
}

// Normalize computes the value a keystroke should produce: the character
// filter runs first, then the max-length clamp. The caret position is
// clamped into the new value's bounds so it never lands past the end.
// A filter that does not compile is warned about and skipped.
func (s Spec) Normalize(raw string, caret int) (string, int) {
	value := raw
	if s.Filter != "" {
		if re := compile(s.Filter); re != nil {
			value = re.ReplaceAllString(value, "")
		} else {
			logger.Warn("invalid field filter, skipping", "field", s.Name, "filter", s.Filter)
		}
	}

	runes := []rune(value)
	if s.MaxLength > 0 && len(runes) > s.MaxLength {
		runes = runes[:s.MaxLength]
		value = string(runes)
	}

	if caret < 0 {
		caret = 0
	}
	if caret > len(runes) {
		caret = len(runes)
	}
	return value, caret
}

// Apply normalizes raw input and packages it as a Change for the form
// session. Disabled fields swallow edits.
func (s Spec) Apply(raw string) (Change, bool) {
	if s.Disabled {
		return Change{}, false
	}
	value, _ := s.Normalize(raw, len([]rune(raw)))
	return Change{Name: s.Name, Value: value}, true
}

// Matches reports whether value satisfies the field's format pattern. An
// empty pattern or an invalid one (warned, skipped) always matches;
// required-ness is the form session's concern, so the empty value matches
// here too.
func (s Spec) Matches(value string) bool {
	if s.Pattern == "" || value == "" {
		return true
	}
	re := compile(anchor(s.Pattern))
	if re == nil {
		logger.Warn("invalid field pattern, skipping", "field", s.Name, "pattern", s.Pattern)
		return true
	}
	return re.MatchString(value)
}

// HasOption reports whether value is one of the field's declared options.
func (s Spec) HasOption(value string) bool {
	for _, opt := range s.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func compile(pattern string) *regexp.Regexp {
	if cached, ok := regexpCache.Load(pattern); ok {
		re, _ := cached.(*regexp.Regexp)
		return re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		regexpCache.Store(pattern, (*regexp.Regexp)(nil))
		return nil
	}
	regexpCache.Store(pattern, re)
	return re
}

func anchor(pattern string) string {
	if len(pattern) > 0 && pattern[0] == '^' {
		return pattern
	}
	return "^(?:" + pattern + ")$"
}
