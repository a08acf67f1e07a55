package domain

import "time"

// DateLayout is the calendar date format used on every external surface.
const DateLayout = "2006-01-02"

type Subject struct {
	Name          string
	Importance    Importance
	Deadline      time.Time
	RequiredHours float64
}

// CivilDate truncates t to midnight UTC of its own calendar date, so that
// day arithmetic never crosses DST or zone boundaries.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative when
// b is before a). Both are truncated to their calendar dates first.
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)).Hours() / 24)
}
