package holiday

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"cdbl-lms/internal/shared/dateutil"
)

// maxEventDays bounds how many days one VEVENT may expand into.
const maxEventDays = 31

// ParseICS turns every VEVENT in the calendar into one Holiday per day.
// All-day events use an exclusive DTEND as RFC 5545 defines; events
// without DTEND cover one day.
func ParseICS(reader io.Reader) ([]Holiday, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	seen := make(map[string]bool)
	var out []Holiday
	for _, evt := range cal.Events() {
		summary := evt.GetProperty(ics.ComponentPropertySummary)
		if summary == nil || strings.TrimSpace(summary.Value) == "" {
			continue
		}

		start, end, err := eventDays(evt)
		if err != nil {
			continue
		}

		for d, n := start, 0; d.Before(end) && n < maxEventDays; d, n = d.AddDate(0, 0, 1), n+1 {
			key := dateutil.Format(d)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Holiday{
				ID:     uuid.New(),
				Date:   d,
				Title:  strings.TrimSpace(summary.Value),
				Source: SourceICS,
			})
		}
	}
	return out, nil
}

// eventDays returns the first day of evt and the day after its last one.
// Timed events cover every day they touch in their own time zone.
func eventDays(evt *ics.VEvent) (time.Time, time.Time, error) {
	if isAllDay(evt) {
		start, err := evt.GetAllDayStartAt()
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		first := dateutil.Day(start)
		end, err := evt.GetAllDayEndAt()
		if err != nil || !dateutil.Day(end).After(first) {
			return first, first.AddDate(0, 0, 1), nil
		}
		return first, dateutil.Day(end), nil
	}

	start, err := evt.GetStartAt()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	first := dateutil.Day(start)
	end, err := evt.GetEndAt()
	if err != nil || !end.After(start) {
		return first, first.AddDate(0, 0, 1), nil
	}
	last := dateutil.Day(end)
	if !end.Equal(time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())) {
		last = last.AddDate(0, 0, 1)
	}
	if !last.After(first) {
		last = first.AddDate(0, 0, 1)
	}
	return first, last, nil
}

func isAllDay(evt *ics.VEvent) bool {
	prop := evt.GetProperty(ics.ComponentPropertyDtStart)
	if prop == nil {
		return false
	}
	if v := prop.ICalParameters[string(ics.ParameterValue)]; len(v) == 1 && v[0] == string(ics.ValueDataTypeDate) {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}
