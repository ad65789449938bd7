// Package intake maps submitted application forms onto the relational
// schema and persists them atomically.
package intake

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Normalizer converts a raw incoming value into what gets stored, or nil
// when the value is empty or unparseable.
type Normalizer func(string) any

// Field binds one incoming form field to its storage column. The same
// declaration drives payload filtering and SQL generation, so the two
// cannot drift. Only names present here ever reach a query; everything
// else in the payload is ignored.
type Field struct {
	Name      string
	Column    string
	Normalize Normalizer
}

// Schema is the full allow-list, in storage column order.
var Schema = []Field{
	{Name: "firstnames", Column: "first_names"},
	{Name: "surname", Column: "surname"},
	{Name: "gender", Column: "gender"},
	{Name: "birthdate", Column: "birthdate", Normalize: NormalizeDate},
	{Name: "said", Column: "sa_id_number"},
	{Name: "southAfricanCitizen", Column: "sa_citizen"},
	{Name: "race", Column: "race"},
	{Name: "email", Column: "email"},
	{Name: "contactnumber", Column: "contact_number"},
	{Name: "secondarycontact", Column: "secondary_contact"},
	{Name: "facebookurl", Column: "facebook_url"},
	{Name: "address", Column: "address"},
	{Name: "suburb", Column: "suburb"},
	{Name: "city", Column: "city"},
	{Name: "postcode", Column: "postcode"},
	{Name: "grade11Passed", Column: "grade11_passed"},
	{Name: "highestGrade", Column: "highest_grade"},
	{Name: "tertiaryInstitution", Column: "tertiary_institution"},
	{Name: "fieldOfStudy", Column: "field_of_study"},
	{Name: "yearCompleted", Column: "year_completed", Normalize: NormalizeYear},
	{Name: "skillsInterest", Column: "skills_interest"},
	{Name: "driversLicense", Column: "drivers_license"},
	{Name: "otherSkills", Column: "other_skills"},
	{Name: "availability", Column: "availability"},
	{Name: "howHeard", Column: "how_heard"},
	{Name: "otherHowHeard", Column: "how_heard_other"},
	{Name: "trainingFeeAware", Column: "training_fee_aware"},
	{Name: "transportAware", Column: "transport_aware"},
	{Name: "interviewDate", Column: "interview_date", Normalize: NormalizeDate},
	{Name: "interviewTime", Column: "interview_time", Normalize: NormalizeTime},
}

// Columns lists the storage columns in schema order.
func Columns() []string {
	cols := make([]string, len(Schema))
	for i, f := range Schema {
		cols[i] = f.Column
	}
	return cols
}

// MapSubmission reshapes an incoming payload into one value per schema
// column, in schema order. Absent fields and empty strings store NULL;
// unknown payload keys never appear in the output.
func MapSubmission(formData map[string]any) []any {
	values := make([]any, len(Schema))
	for i, f := range Schema {
		raw, ok := formData[f.Name]
		if !ok {
			continue
		}
		s := stringify(raw)
		if f.Normalize != nil {
			values[i] = f.Normalize(s)
			continue
		}
		if s == "" {
			continue
		}
		values[i] = s
	}
	return values
}

// NormalizeDate reduces an incoming date (RFC3339 timestamp or a plain
// calendar date) to the canonical "2006-01-02" string, or nil.
func NormalizeDate(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02")
	}
	return nil
}

// NormalizeYear parses a four-digit-ish year to an integer, or nil.
func NormalizeYear(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return year
}

// NormalizeTime reshapes a time of day into "HH:MM:SS", or nil when
// malformed. "9:5" becomes "09:05:00".
func NormalizeTime(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil
		}
		nums[i] = n
	}
	if nums[0] > 23 || nums[1] > 59 || nums[2] > 59 {
		return nil
	}
	return fmt.Sprintf("%02d:%02d:%02d", nums[0], nums[1], nums[2])
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case float64:
		// JSON numbers decode as float64; years and postcodes arrive
		// this way from some clients.
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
