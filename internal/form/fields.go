package form

import "github.com/dialastudent/stocktaker-intake/internal/form/field"

// Validation patterns shared between blur-time checks and step guards.
const (
	emailPattern    = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	saIDPattern     = `^([0-9]{2})([0-1][0-9])([0-3][0-9])([0-9]{4})([0-1])([0-9]{2})$`
	phonePattern    = `^0[6-8][0-9]{8}$`
	postcodePattern = `^[0-9]{4}$`
	yearPattern     = `^(19|20)[0-9]{2}$`
)

var yesNo = []field.Option{
	{Value: "Yes", Label: "Yes"},
	{Value: "No", Label: "No"},
}

// stepFields declares every control of each step, in render order. The
// same declarations drive rendering, change normalization, and the step
// guards; there is no second copy of the constraints.
var stepFields = map[Step][]field.Spec{
	StepPersonal: {
		{Kind: field.Text, Label: "First Name(s)", Name: "firstnames", Required: true, MaxLength: 255, Filter: `[^a-zA-Z\s-]`},
		{Kind: field.Text, Label: "Surname", Name: "surname", Required: true, MaxLength: 255, Filter: `[^a-zA-Z\s-]`},
		{Kind: field.Radio, Label: "Gender", Name: "gender", Required: true, Options: []field.Option{
			{Value: "Male", Label: "Male"},
			{Value: "Female", Label: "Female"},
			{Value: "Prefer not to say", Label: "Prefer not to say"},
		}},
		{Kind: field.Date, Label: "Birth Date", Name: "birthdate", Required: true},
		{Kind: field.Text, Label: "SA ID Number", Name: "said", Required: true, MaxLength: 13, Pattern: saIDPattern, Filter: `[^0-9]`},
		{Kind: field.Radio, Label: "Are you a South African citizen?", Name: "southAfricanCitizen", Required: true, Options: yesNo},
		{Kind: field.Text, Label: "Race (optional)", Name: "race", MaxLength: 100},
	},
	StepContact: {
		{Kind: field.Email, Label: "Email Address", Name: "email", Required: true, Pattern: emailPattern, MaxLength: 255},
		{Kind: field.Tel, Label: "Cellphone Number", Name: "contactnumber", Required: true, MaxLength: 10, Pattern: phonePattern, Filter: `[^0-9]`, Placeholder: "e.g 0721234567"},
		{Kind: field.Tel, Label: "Alternative Contact", Name: "secondarycontact", MaxLength: 10, Pattern: phonePattern, Filter: `[^0-9]`, Placeholder: "e.g 0721234567"},
		{Kind: field.Text, Label: "Facebook URL (optional)", Name: "facebookurl", MaxLength: 255},
		{Kind: field.TextArea, Label: "Physical Address", Name: "address", Rows: 2, Placeholder: "Street address"},
		{Kind: field.Text, Label: "Suburb", Name: "suburb", MaxLength: 100},
		{Kind: field.Text, Label: "City", Name: "city", MaxLength: 100},
		{Kind: field.Text, Label: "Postcode", Name: "postcode", MaxLength: 4, Pattern: postcodePattern, Filter: `[^0-9]`},
	},
	StepEducation: {
		{Kind: field.Radio, Label: "Have you passed Grade 11?", Name: "grade11Passed", Required: true, Options: yesNo},
		{Kind: field.Select, Label: "Highest Grade / Qualification", Name: "highestGrade", Required: true, Placeholder: "Select highest qualification", Options: []field.Option{
			{Value: "Grade11", Label: "Grade 11"},
			{Value: "Grade12", Label: "Grade 12 / Matric"},
			{Value: "Certificate", Label: "Certificate"},
			{Value: "Diploma", Label: "Diploma"},
			{Value: "Degree", Label: "Degree"},
			{Value: "Postgraduate", Label: "Postgraduate"},
		}},
		{Kind: field.Text, Label: "Tertiary Institution (if applicable)", Name: "tertiaryInstitution", MaxLength: 255},
		{Kind: field.Text, Label: "Field of Study", Name: "fieldOfStudy", MaxLength: 255},
		{Kind: field.Text, Label: "Year Completed", Name: "yearCompleted", MaxLength: 4, Pattern: yearPattern, Filter: `[^0-9]`},
	},
	StepSkills: {
		{Kind: field.Select, Label: "Area of interest / skills (main)", Name: "skillsInterest", Required: true, Placeholder: "Select primary skill", Options: []field.Option{
			{Value: "Accounts", Label: "Accounts"},
			{Value: "Administration", Label: "Administration"},
			{Value: "Cashier", Label: "Cashier"},
			{Value: "Call Centre", Label: "Call Centre"},
			{Value: "First Aid", Label: "First Aid"},
			{Value: "Marketing", Label: "Marketing"},
			{Value: "Promotions", Label: "Promotions"},
			{Value: "Shelf packing", Label: "Shelf packing"},
			{Value: "Stock taking", Label: "Stock taking"},
			{Value: "Care giver", Label: "Care giver"},
			{Value: "Other", Label: "Other"},
		}},
		{Kind: field.Select, Label: "Driver's license", Name: "driversLicense", Required: true, Placeholder: "Select license", Options: []field.Option{
			{Value: "None", Label: "None"},
			{Value: "Code A", Label: "Code A"},
			{Value: "Code B", Label: "Code B"},
			{Value: "Code EB", Label: "Code EB"},
			{Value: "Code C", Label: "Code C"},
		}},
		{Kind: field.TextArea, Label: "Other skills or hobbies", Name: "otherSkills", Rows: 3, Placeholder: "e.g., first aid, computer skills, etc."},
	},
	StepAvailability: {
		{Kind: field.Select, Label: "Availability for stocktakes", Name: "availability", Required: true, Placeholder: "Select availability", Options: []field.Option{
			{Value: "Full Day", Label: "Full Day"},
			{Value: "Weekends only", Label: "Weekends only"},
			{Value: "After hours", Label: "After hours"},
			{Value: "Any", Label: "Any"},
		}},
		{Kind: field.Select, Label: "How did you hear about us?", Name: "howHeard", Required: true, Placeholder: "Select one", Options: []field.Option{
			{Value: "Search Engine", Label: "Search Engine"},
			{Value: "Television", Label: "Television"},
			{Value: "Print Media", Label: "Print Media"},
			{Value: "Friend/Family", Label: "Friend/Family"},
			{Value: "Facebook", Label: "Facebook"},
			{Value: "Other", Label: "Other"},
		}},
		{Kind: field.Text, Label: "Please specify", Name: "otherHowHeard", MaxLength: 255},
		{Kind: field.Radio, Label: "Are you aware of the R80 training fee?", Name: "trainingFeeAware", Required: true, Options: yesNo},
		{Kind: field.Radio, Label: "Can you arrange transport to Braamfontein (twice)?", Name: "transportAware", Required: true, Options: yesNo},
	},
	StepInterview: {
		{Kind: field.Date, Label: "Interview Date", Name: "interviewDate", Required: true},
		{Kind: field.Select, Label: "Interview Time", Name: "interviewTime", Required: true},
	},
}

// specIndex locates a field's spec by name.
var specIndex = func() map[string]field.Spec {
	idx := make(map[string]field.Spec)
	for _, specs := range stepFields {
		for _, s := range specs {
			idx[s.Name] = s
		}
	}
	return idx
}()

// Fields returns the declared controls of a step in render order.
func Fields(step Step) []field.Spec {
	return stepFields[step]
}

// Lookup returns the spec for a field name.
func Lookup(name string) (field.Spec, bool) {
	s, ok := specIndex[name]
	return s, ok
}

// Defaults returns the initial field values of a fresh form.
func Defaults() map[string]string {
	values := make(map[string]string, len(specIndex))
	for name := range specIndex {
		values[name] = ""
	}
	values["gender"] = "Male"
	values["southAfricanCitizen"] = "Yes"
	return values
}
