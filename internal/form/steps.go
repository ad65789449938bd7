package form

// Step identifies one page of the application form.
type Step int

const (
	StepPersonal Step = iota + 1
	StepContact
	StepEducation
	StepSkills
	StepAvailability
	StepInterview
)

// FirstStep and LastStep bound the valid step range.
const (
	FirstStep = StepPersonal
	LastStep  = StepInterview
)

// StepCount is the number of form pages.
const StepCount = int(LastStep)

func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "personal"
	case StepContact:
		return "contact"
	case StepEducation:
		return "education"
	case StepSkills:
		return "skills"
	case StepAvailability:
		return "availability"
	case StepInterview:
		return "interview"
	default:
		return "unknown"
	}
}

// Title is the heading shown above the step.
func (s Step) Title() string {
	switch s {
	case StepPersonal:
		return "Personal Information"
	case StepContact:
		return "Contact Details & Address"
	case StepEducation:
		return "Education & Qualifications"
	case StepSkills:
		return "Skills & Interests"
	case StepAvailability:
		return "Availability & Final Questions"
	case StepInterview:
		return "Interview Booking"
	default:
		return ""
	}
}

// Valid reports whether s is within the form's step range.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}
