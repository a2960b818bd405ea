package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Errors raised while expanding a schedule into events.
var (
	ErrInvalidDate = errors.New("no such calendar date")
	ErrUnnamedType = errors.New("category has no display name")
)

// Event is a single dated collection, ready for export.
type Event struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Dates expands the spec within one month of the year. A literal day
// must exist in the calendar; a weekday rule yields every matching date
// in ascending order, four or five per month, and none at all when the
// month number is out of range.
func (s DaySpec) Dates(year int, month time.Month) ([]time.Time, error) {
	switch s.kind {
	case literalDay:
		d, ok := makeDate(year, month, s.day)
		if !ok {
			return nil, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), s.day)
		}
		return []time.Time{d}, nil
	case everyWeekday:
		var dates []time.Time
		for n := 1; n <= 5; n++ {
			if d, ok := nthWeekday(year, month, s.weekday, n); ok {
				dates = append(dates, d)
			}
		}
		return dates, nil
	}
	return nil, nil
}

// Events expands every entry into dated events with the override table
// applied. Entries keep sheet order, weekday rules expand ascending, and
// repeated dates stay repeated.
func (s *Schedule) Events() ([]Event, error) {
	var events []Event
	for _, entry := range s.Entries {
		dates, err := entry.Day.Dates(s.Year, entry.Month)
		if err != nil {
			return nil, err
		}
		for _, date := range dates {
			resolved, err := s.resolve(date)
			if err != nil {
				return nil, err
			}
			name, ok := s.Names[entry.Type]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnnamedType, entry.Type.Key())
			}
			events = append(events, Event{
				Date:        resolved.Format("2006-01-02"),
				Type:        entry.Type.Key(),
				Description: name,
			})
		}
	}
	return events, nil
}

// resolve applies the override table to a date. One lookup, never
// chained: a replacement that is itself an override source stays put.
func (s *Schedule) resolve(date time.Time) (time.Time, error) {
	key := MonthDay{Month: date.Month(), Day: date.Day()}
	to, ok := s.Overrides[key]
	if !ok {
		return date, nil
	}
	d, ok := makeDate(s.Year, to.Month, to.Day)
	if !ok {
		return time.Time{}, fmt.Errorf("override %d/%d -> %d/%d: %w",
			key.Day, int(key.Month), to.Day, int(to.Month), ErrInvalidDate)
	}
	return d, nil
}

// makeDate builds a date and reports whether it names a real calendar
// day. time.Date normalizes out of range components, so they are
// compared back after construction.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// nthWeekday returns the nth occurrence of w in the month, if the month
// has that many.
func nthWeekday(year int, month time.Month, w time.Weekday, n int) (time.Time, bool) {
	if month < time.January || month > time.December {
		return time.Time{}, false
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	day := 1 + (int(w)-int(first.Weekday())+7)%7 + (n-1)*7
	if day > daysIn(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// daysIn returns the number of days in the month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
