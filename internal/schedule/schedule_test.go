package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A Monday, chosen so the window boundaries are easy to reason about.
var monday = time.Date(2026, time.March, 2, 14, 30, 0, 0, time.UTC)

func TestSelectableDatesWindow(t *testing.T) {
	dates := SelectableDates(monday)
	require.NotEmpty(t, dates)

	// Window opens two days out and runs 90 days.
	assert.Equal(t, "2026-03-04", dates[0])
	assert.Equal(t, "2026-06-02", dates[len(dates)-1])

	set := SelectableDateSet(monday)
	_, before := set["2026-03-03"]
	assert.False(t, before, "day before window start must not be selectable")
	_, after := set["2026-06-03"]
	assert.False(t, after, "day after window end must not be selectable")
}

func TestSelectableDatesSkipWeekends(t *testing.T) {
	for _, d := range SelectableDates(monday) {
		parsed, err := time.Parse(DateFormat, d)
		require.NoError(t, err)
		wd := parsed.Weekday()
		assert.NotEqual(t, time.Saturday, wd, "weekend date %s in selectable set", d)
		assert.NotEqual(t, time.Sunday, wd, "weekend date %s in selectable set", d)
	}

	// 2026-03-07 and 2026-03-08 are Sat/Sun inside the window.
	assert.False(t, Selectable(monday, "2026-03-07"))
	assert.False(t, Selectable(monday, "2026-03-08"))
	assert.True(t, Selectable(monday, "2026-03-09"))
}

func TestValidSlot(t *testing.T) {
	assert.True(t, ValidSlot("08:30"))
	assert.True(t, ValidSlot("11:30"))
	assert.False(t, ValidSlot("12:00"))
	assert.False(t, ValidSlot("08:45"))
	assert.False(t, ValidSlot(""))
}

func TestSlotOrderAndBounds(t *testing.T) {
	require.Len(t, Slots, 7)
	assert.Equal(t, "08:30", Slots[0].Value)
	assert.Equal(t, "11:30", Slots[6].Value)
	assert.Equal(t, "12:00", Slots[6].End)
}

func TestAvailability(t *testing.T) {
	counts := map[string]map[string]int{
		"2026-03-04": {
			"08:30": 10,
			"09:00": 7,
			"09:30": 12, // over capacity from legacy data
		},
	}

	avail := Availability("2026-03-04", counts)
	require.Len(t, avail, len(Slots))

	byValue := map[string]SlotAvailability{}
	for _, a := range avail {
		byValue[a.Slot.Value] = a
	}

	assert.True(t, byValue["08:30"].Full)
	assert.Equal(t, 0, byValue["08:30"].Remaining)

	assert.False(t, byValue["09:00"].Full)
	assert.Equal(t, 3, byValue["09:00"].Remaining)

	assert.True(t, byValue["09:30"].Full)
	assert.Equal(t, 0, byValue["09:30"].Remaining)

	// No bookings at all on this slot.
	assert.False(t, byValue["11:30"].Full)
	assert.Equal(t, MaxBookingsPerSlot, byValue["11:30"].Remaining)
}

func TestAvailabilityUnknownDate(t *testing.T) {
	avail := Availability("2026-03-05", map[string]map[string]int{})
	require.Len(t, avail, len(Slots))
	for _, a := range avail {
		assert.False(t, a.Full)
		assert.Equal(t, MaxBookingsPerSlot, a.Remaining)
	}
}

func TestMonthGrid(t *testing.T) {
	selectable := SelectableDateSet(monday)

	grid := MonthGrid(2026, time.March, selectable, "2026-03-09")

	// March 2026 starts on a Sunday: no leading blanks, 31 cells.
	require.Len(t, grid, 31)
	assert.False(t, grid[0].Blank)
	assert.Equal(t, 1, grid[0].Day)

	var selectedCount int
	for _, day := range grid {
		if day.Selected {
			selectedCount++
			assert.Equal(t, "2026-03-09", day.Date)
		}
		if day.Date == "2026-03-03" {
			assert.False(t, day.Selectable)
		}
		if day.Date == "2026-03-04" {
			assert.True(t, day.Selectable)
		}
	}
	assert.Equal(t, 1, selectedCount)
}

func TestMonthGridLeadingBlanks(t *testing.T) {
	// June 2026 starts on a Monday: one blank cell for Sunday.
	grid := MonthGrid(2026, time.June, nil, "")
	require.Len(t, grid, 1+30)
	assert.True(t, grid[0].Blank)
	assert.Equal(t, 1, grid[1].Day)
}

func TestMonthNavigationIsPure(t *testing.T) {
	selectable := SelectableDateSet(monday)
	before := len(selectable)

	y, m := NextMonth(2026, time.December)
	assert.Equal(t, 2027, y)
	assert.Equal(t, time.January, m)

	y, m = PrevMonth(2026, time.January)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.December, m)

	MonthGrid(2026, time.April, selectable, "")
	assert.Equal(t, before, len(selectable), "rendering must not mutate the selectable set")
}
