package utils

import "time"

// MonthWindow is an inclusive date range covering one calendar month
type MonthWindow struct {
	Start time.Time
	End   time.Time
	Label string
}

// CurrentMonthRange returns the inclusive start and end of the calendar
// month containing now, in now's location. The end bound is the last
// instant of the month so timestamped rows on the final day are included.
func CurrentMonthRange(now time.Time) (time.Time, time.Time) {
	year, month, _ := now.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// LastNMonths returns one window per trailing calendar month including the
// current one, oldest first. Month arithmetic rolls over year boundaries.
func LastNMonths(n int, now time.Time) []MonthWindow {
	year, month, _ := now.Date()
	windows := make([]MonthWindow, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := time.Date(year, month-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		windows = append(windows, MonthWindow{
			Start: start,
			End:   end,
			Label: start.Format("January"),
		})
	}
	return windows
}

// ShortLabel returns the abbreviated month name for the window, e.g. "Jan".
func (w MonthWindow) ShortLabel() string {
	return w.Start.Format("Jan")
}

// Key returns the window's year-month key, e.g. "2026-08".
func (w MonthWindow) Key() string {
	return w.Start.Format("2006-01")
}
