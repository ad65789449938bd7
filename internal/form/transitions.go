package form

// The valid-transition logic lives here, in one table, rather than
// scattered across renders: each step advances to exactly one successor,
// guarded by its required-field predicate.
var nextStep = map[Step]Step{
	StepPersonal:     StepContact,
	StepContact:      StepEducation,
	StepEducation:    StepSkills,
	StepSkills:       StepAvailability,
	StepAvailability: StepInterview,
}

// RequiredFields lists the fields the guard checks before leaving step,
// including conditionally required ones given the current values.
func RequiredFields(step Step, values map[string]string) []string {
	var names []string
	for _, spec := range Fields(step) {
		if spec.Required {
			names = append(names, spec.Name)
		}
	}
	if step == StepAvailability && values["howHeard"] == "Other" {
		names = append(names, "otherHowHeard")
	}
	return names
}

// Next attempts to advance to the following step. The transition is
// refused when any required field of the active step is empty or fails
// its format check; in that case every required field is marked touched
// so inline errors show, and the session stays put.
func (s *Session) Next() bool {
	if !s.validateStep(s.step) {
		return false
	}
	to, ok := nextStep[s.step]
	if !ok {
		return false
	}
	s.step = to
	s.markDirty()
	return true
}

// Prev moves back one step unconditionally.
func (s *Session) Prev() {
	if s.step > FirstStep {
		s.step--
		s.markDirty()
	}
}

// CanSubmit reports whether the final step passes its guard; it runs the
// same validation Next applies, including touching required fields on
// failure.
func (s *Session) CanSubmit() bool {
	if s.step != LastStep {
		return false
	}
	return s.validateStep(s.step)
}

// validateStep runs the guard for step: required-ness plus field format
// checks. All required fields get touched on failure so errors render.
func (s *Session) validateStep(step Step) bool {
	required := RequiredFields(step, s.values)
	ok := true
	for _, name := range required {
		s.touched[name] = true
		if msg := s.validateField(name); msg != "" {
			s.errors[name] = msg
			ok = false
		}
	}
	// Optional fields with content still have to be well formed.
	for _, spec := range Fields(step) {
		if spec.Required || s.values[spec.Name] == "" {
			continue
		}
		if msg := s.validateField(spec.Name); msg != "" {
			s.errors[spec.Name] = msg
			s.touched[spec.Name] = true
			ok = false
		}
	}
	if !ok {
		s.markDirty()
	}
	return ok
}
