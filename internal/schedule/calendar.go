package schedule

import "time"

// Day is one cell of a month grid. Blank cells pad the first week so day
// one lands under its weekday column.
type Day struct {
	Blank      bool
	Day        int
	Date       string
	Selectable bool
	Selected   bool
}

// MonthGrid renders year/month as a Sunday-first calendar over the given
// selectable-date set. It is a pure function: navigating months never
// changes the set, only which window of it is visible.
func MonthGrid(year int, month time.Month, selectable map[string]struct{}, selected string) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := make([]Day, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		grid = append(grid, Day{Blank: true})
	}
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(DateFormat)
		_, ok := selectable[date]
		grid = append(grid, Day{
			Day:        d,
			Date:       date,
			Selectable: ok,
			Selected:   date == selected,
		})
	}
	return grid
}

// NextMonth returns the year/month pair following the given one.
func NextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}

// PrevMonth returns the year/month pair preceding the given one.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}
