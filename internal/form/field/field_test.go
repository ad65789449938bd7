package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFilterThenClamp(t *testing.T) {
	spec := Spec{
		Kind:      Tel,
		Name:      "contactnumber",
		MaxLength: 10,
		Filter:    `[^0-9]`,
	}

	// Filtering runs before the length clamp: punctuation is stripped
	// first, then the digits are truncated.
	value, caret := spec.Normalize("072-123-456789", 14)
	assert.Equal(t, "0721234567", value)
	assert.Equal(t, 10, caret)
}

func TestNormalizeNameFilter(t *testing.T) {
	spec := Spec{
		Kind:      Text,
		Name:      "firstnames",
		MaxLength: 255,
		Filter:    `[^a-zA-Z\s-]`,
	}

	value, _ := spec.Normalize("Anna-Marie 3rd!", 15)
	assert.Equal(t, "Anna-Marie rd", value)
}

func TestNormalizeCaretClamp(t *testing.T) {
	spec := Spec{Name: "said", MaxLength: 13, Filter: `[^0-9]`}

	// Caret sat after stripped characters; it must land inside the new value.
	value, caret := spec.Normalize("12ab3", 5)
	assert.Equal(t, "123", value)
	assert.Equal(t, 3, caret)

	_, caret = spec.Normalize("123", -2)
	assert.Equal(t, 0, caret)
}

func TestNormalizeInvalidFilterSkipped(t *testing.T) {
	spec := Spec{Name: "broken", Filter: `[unclosed`}

	// Must warn and pass input through rather than panic.
	value, caret := spec.Normalize("hello", 5)
	assert.Equal(t, "hello", value)
	assert.Equal(t, 5, caret)
}

func TestApplyDisabled(t *testing.T) {
	spec := Spec{Name: "city", Disabled: true}
	_, ok := spec.Apply("Johannesburg")
	assert.False(t, ok)
}

func TestApplyProducesChange(t *testing.T) {
	spec := Spec{Name: "postcode", MaxLength: 4, Filter: `[^0-9]`}
	change, ok := spec.Apply("20-01")
	assert.True(t, ok)
	assert.Equal(t, Change{Name: "postcode", Value: "2001"}, change)
}

func TestMatches(t *testing.T) {
	phone := Spec{Name: "contactnumber", Pattern: `0[6-8][0-9]{8}`}
	assert.True(t, phone.Matches("0721234567"))
	assert.False(t, phone.Matches("0921234567"))
	assert.False(t, phone.Matches("072123456"))
	// Emptiness is the required-check's concern, not the pattern's.
	assert.True(t, phone.Matches(""))

	said := Spec{Name: "said", Pattern: `^([0-9]{2})([0-1][0-9])([0-3][0-9])([0-9]{4})([0-1])([0-9]{2})$`}
	assert.True(t, said.Matches("9202204720082"))
	assert.False(t, said.Matches("92022047200"))
	assert.False(t, said.Matches("9213404720082"))
}

func TestMatchesInvalidPattern(t *testing.T) {
	spec := Spec{Name: "broken", Pattern: `(unclosed`}
	assert.True(t, spec.Matches("anything"))
}

func TestHasOption(t *testing.T) {
	spec := Spec{
		Kind: Select,
		Name: "howHeard",
		Options: []Option{
			{Value: "Facebook", Label: "Facebook"},
			{Value: "Other", Label: "Other"},
		},
	}
	assert.True(t, spec.HasOption("Other"))
	assert.False(t, spec.HasOption("Billboard"))
}
