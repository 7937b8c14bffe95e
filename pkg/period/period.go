package period

import "time"

// Window is one calendar month as an inclusive [Start, End] range.
// End is the last representable instant of the month's final day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Month returns the calendar-month window containing now shifted by offset
// months: 0 is the month of now, -1 the previous month, and so on. Windows
// are computed in the server's local calendar; year rollover and varying
// month lengths are handled by the date arithmetic itself.
func Month(now time.Time, offset int) Window {
	local := now.In(time.Local)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, offset, 0)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
