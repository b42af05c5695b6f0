package dateutil

import "time"

const Layout = "2006-01-02"

// Parse reads a YYYY-MM-DD string as a UTC calendar date.
func Parse(v string) (time.Time, error) {
	return time.ParseInLocation(Layout, v, time.UTC)
}

// ParseOptional returns nil for a nil or empty input.
func ParseOptional(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := Parse(*v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Day strips the clock, keeping the calendar date of t in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole days from a to b (b - a), ignoring clock time.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

func DaysInMonth(t time.Time) int {
	return MonthEnd(t).Day()
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

func FormatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(Layout)
	return &s
}
