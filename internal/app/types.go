package app

import "time"

// ConvertOptions describe a single sheet-to-calendar conversion.
type ConvertOptions struct {
	InputPath    string
	OutputPath   string
	Format       string
	CalendarName string
	Reminders    []time.Duration
	HolidayCheck bool
}
