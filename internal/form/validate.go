package form

import "github.com/dialastudent/stocktaker-intake/internal/form/field"

// Inline messages shown next to a failing field. Fields without a custom
// message fall back to a generic one.
var formatMessages = map[string]string{
	"email":            "Enter a valid email address",
	"said":             "Enter a valid 13-digit SA ID number",
	"contactnumber":    "Enter a valid 10-digit cellphone number",
	"secondarycontact": "Enter a valid 10-digit cellphone number",
	"postcode":         "Enter a 4-digit postcode",
	"yearCompleted":    "Enter a 4-digit year",
}

const requiredMessage = "This field is required"

// validateField returns the inline error for a field's current value, or
// empty when it is acceptable. Required-ness only bites for fields the
// active step's guard names; here an empty optional field is fine.
func (s *Session) validateField(name string) string {
	spec, ok := Lookup(name)
	if !ok {
		return ""
	}
	value := s.values[name]

	if value == "" {
		if s.isRequiredNow(name) {
			return requiredMessage
		}
		return ""
	}

	if !spec.Matches(value) {
		if msg, ok := formatMessages[name]; ok {
			return msg
		}
		return "Invalid value"
	}

	if (spec.Kind == field.Select || spec.Kind == field.Radio) && len(spec.Options) > 0 && !spec.HasOption(value) {
		return "Invalid value"
	}
	return ""
}

// isRequiredNow evaluates required-ness against the current values, so
// conditionally required fields (otherHowHeard) resolve correctly.
func (s *Session) isRequiredNow(name string) bool {
	for _, step := range []Step{StepPersonal, StepContact, StepEducation, StepSkills, StepAvailability, StepInterview} {
		for _, req := range RequiredFields(step, s.values) {
			if req == name {
				return true
			}
		}
	}
	return false
}
