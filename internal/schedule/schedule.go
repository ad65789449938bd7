// Package schedule computes interview slot availability: which dates can be
// booked and how much capacity remains in each half-hour slot.
package schedule

import "time"

const (
	// MaxBookingsPerSlot caps simultaneous bookings per slot.
	MaxBookingsPerSlot = 10

	// StartOffsetDays is how far ahead of today the bookable window opens.
	StartOffsetDays = 2

	// WindowDays is the length of the bookable window.
	WindowDays = 90

	// DateFormat is the canonical calendar-date string used across the API.
	DateFormat = "2006-01-02"
)

// Slot is a fixed half-hour interview window.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Value string `json:"value"`
}

// Slots is the ordered list of bookable half-hour marks, 08:30 through 11:30.
var Slots = []Slot{
	{Start: "08:30", End: "09:00", Value: "08:30"},
	{Start: "09:00", End: "09:30", Value: "09:00"},
	{Start: "09:30", End: "10:00", Value: "09:30"},
	{Start: "10:00", End: "10:30", Value: "10:00"},
	{Start: "10:30", End: "11:00", Value: "10:30"},
	{Start: "11:00", End: "11:30", Value: "11:00"},
	{Start: "11:30", End: "12:00", Value: "11:30"},
}

// ValidSlot reports whether value is one of the fixed half-hour marks.
func ValidSlot(value string) bool {
	for _, s := range Slots {
		if s.Value == value {
			return true
		}
	}
	return false
}

// SelectableDates enumerates every weekday in [today+2, today+2+90] as
// canonical date strings, in order.
func SelectableDates(today time.Time) []string {
	start := truncateToDay(today).AddDate(0, 0, StartOffsetDays)
	end := start.AddDate(0, 0, WindowDays)

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		dates = append(dates, d.Format(DateFormat))
	}
	return dates
}

// SelectableDateSet is SelectableDates as a membership set.
func SelectableDateSet(today time.Time) map[string]struct{} {
	set := make(map[string]struct{})
	for _, d := range SelectableDates(today) {
		set[d] = struct{}{}
	}
	return set
}

// Selectable reports whether date (a canonical date string) is bookable
// relative to today.
func Selectable(today time.Time, date string) bool {
	_, ok := SelectableDateSet(today)[date]
	return ok
}

// SlotAvailability describes one slot's remaining capacity on a given date.
type SlotAvailability struct {
	Slot      Slot `json:"slot"`
	Booked    int  `json:"booked"`
	Remaining int  `json:"remaining"`
	Full      bool `json:"full"`
}

// Availability reports capacity for every slot on date given the booking
// counts map (date -> time -> count). Counts beyond capacity clamp
// remaining to zero.
func Availability(date string, counts map[string]map[string]int) []SlotAvailability {
	dateCounts := counts[date]
	out := make([]SlotAvailability, 0, len(Slots))
	for _, slot := range Slots {
		booked := dateCounts[slot.Value]
		remaining := MaxBookingsPerSlot - booked
		if remaining < 0 {
			remaining = 0
		}
		out = append(out, SlotAvailability{
			Slot:      slot,
			Booked:    booked,
			Remaining: remaining,
			Full:      booked >= MaxBookingsPerSlot,
		})
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
