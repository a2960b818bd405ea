package app

import (
	"fmt"
	"log"

	"github.com/spf13/afero"

	"github.com/klabast/wb-services/harmonogram/internal/schedule"
)

// LoadSchedule reads and parses the collection sheet at path.
func LoadSchedule(fsys afero.Fs, path string) (*schedule.Schedule, error) {
	file, err := OpenSheet(fsys, path)
	if err != nil {
		return nil, err
	}
	defer closeFile(file, path)

	sched, err := schedule.Parse(NewSheetCSVReader(file))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return sched, nil
}

// Convert reads a collection sheet, expands it into events and writes
// the calendar in the requested format. When any stage fails, no output
// file is written.
func Convert(fsys afero.Fs, opts ConvertOptions) error {
	sched, err := LoadSchedule(fsys, opts.InputPath)
	if err != nil {
		return err
	}

	events, err := sched.Events()
	if err != nil {
		return fmt.Errorf("expanding %s: %w", opts.InputPath, err)
	}

	if opts.HolidayCheck {
		holidays := GetPolishHolidays(sched.Year)
		for _, conflict := range HolidayConflicts(events, holidays) {
			log.Printf("Holiday conflict: %s", conflict)
		}
	}

	calName := opts.CalendarName
	if calName == "" {
		calName = DefaultCalendarName
	}

	data, err := FormatEvents(opts.Format, calName, sched.Year, events, opts.Reminders)
	if err != nil {
		return err
	}

	if err := WriteFileAtomic(fsys, opts.OutputPath, data); err != nil {
		return fmt.Errorf("writing %s: %w", opts.OutputPath, err)
	}

	log.Printf("Wrote %d events for %d to %s", len(events), sched.Year, opts.OutputPath)
	return nil
}
