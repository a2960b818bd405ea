package schedule

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"
)

// RowReader yields one table row per call and io.EOF once the stream is
// exhausted. *csv.Reader satisfies it.
type RowReader interface {
	Read() ([]string, error)
}

// Marker cells that open the override section.
const (
	markerDzien = "dzień"
	markerZa    = "za"
)

// Structural errors that abort a parse.
var (
	ErrBadYear         = errors.New("missing or unparseable year")
	ErrMissingNames    = errors.New("missing category name row")
	ErrTooManyNames    = errors.New("more category names than categories")
	ErrBadMonth        = errors.New("unparseable month number")
	ErrTooManyColumns  = errors.New("day columns exceed category count")
	ErrMissingOverride = errors.New("override replacement date missing")
	ErrBadOverride     = errors.New("unparseable override date")
)

type parseState int

const (
	stateYear parseState = iota
	stateNames
	stateEntries
	stateMarker
	stateOverrides
	stateDone
)

type parser struct {
	sched *Schedule
	state parseState
	row   int
}

// Parse consumes rows and builds the schedule. Sections must appear in
// sheet order: year, category names, collection entries, then optionally
// the dzień/za marker and the override rows.
func Parse(r RowReader) (*Schedule, error) {
	p := &parser{
		sched: &Schedule{
			Names:     make(map[WasteType]string),
			Overrides: make(map[MonthDay]MonthDay),
		},
	}
	for p.state != stateDone {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			if err := p.finish(); err != nil {
				return nil, err
			}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", p.row+1, err)
		}
		p.row++
		if err := p.consume(rec); err != nil {
			return nil, err
		}
	}
	return p.sched, nil
}

func (p *parser) consume(rec []string) error {
	switch p.state {
	case stateYear:
		return p.yearRow(rec)
	case stateNames:
		return p.namesRow(rec)
	case stateEntries:
		return p.entryRow(rec)
	case stateMarker:
		p.markerRow(rec)
	case stateOverrides:
		return p.overrideRow(rec)
	}
	return nil
}

// finish handles end of stream. Running out of rows is fatal only while
// the year or name row is still expected; afterwards the sheet may
// simply end, leaving the override table as parsed so far.
func (p *parser) finish() error {
	switch p.state {
	case stateYear:
		return fmt.Errorf("empty sheet: %w", ErrBadYear)
	case stateNames:
		return fmt.Errorf("sheet ends after year row: %w", ErrMissingNames)
	}
	p.state = stateDone
	return nil
}

// yearRow reads the schedule year from the second cell.
func (p *parser) yearRow(rec []string) error {
	if len(rec) < 2 {
		return fmt.Errorf("row %d: %w", p.row, ErrBadYear)
	}
	year, err := strconv.Atoi(rec[1])
	if err != nil {
		return fmt.Errorf("row %d: %w: %q", p.row, ErrBadYear, rec[1])
	}
	p.sched.Year = year
	p.state = stateNames
	return nil
}

// namesRow assigns display names to categories. The first cell is the
// row label; every following non-empty cell names the next category in
// order, empty cells do not consume a slot.
func (p *parser) namesRow(rec []string) error {
	next := WasteType(0)
	if len(rec) > 0 {
		for _, cell := range rec[1:] {
			if cell == "" {
				continue
			}
			if next >= numWasteTypes {
				return fmt.Errorf("row %d: %w: %q", p.row, ErrTooManyNames, cell)
			}
			p.sched.Names[next] = cell
			next++
		}
	}
	p.state = stateEntries
	return nil
}

// entryRow reads one month row of the entries section. An empty first
// cell ends the section. Day cells come in runs of three per category;
// a cell is a day number, a weekday name, or skipped with a warning.
func (p *parser) entryRow(rec []string) error {
	if len(rec) == 0 || rec[0] == "" {
		p.state = stateMarker
		return nil
	}
	month, err := parseNonNegative(rec[0])
	if err != nil {
		return fmt.Errorf("row %d: %w: %q", p.row, ErrBadMonth, rec[0])
	}
	for i, cell := range rec[1:] {
		idx := i / 3
		if idx >= numWasteTypes {
			return fmt.Errorf("row %d: %w", p.row, ErrTooManyColumns)
		}
		spec, ok := parseDayCell(cell)
		if !ok {
			if cell != "" {
				log.Printf("row %d: skipping unrecognized day cell %q", p.row, cell)
			}
			continue
		}
		p.sched.Entries = append(p.sched.Entries, Entry{
			Month: time.Month(month),
			Day:   spec,
			Type:  WasteType(idx),
		})
	}
	return nil
}

// markerRow scans for the dzień/za row. Anything else, including rows
// too short to carry both cells, is discarded.
func (p *parser) markerRow(rec []string) {
	if len(rec) >= 2 && rec[0] == markerDzien && rec[1] == markerZa {
		p.state = stateOverrides
	}
}

// overrideRow reads one date replacement. An empty row or empty first
// cell ends the section; a source date without a replacement is fatal.
func (p *parser) overrideRow(rec []string) error {
	if len(rec) == 0 || rec[0] == "" {
		p.state = stateDone
		return nil
	}
	if len(rec) < 2 || rec[1] == "" {
		return fmt.Errorf("row %d: %w", p.row, ErrMissingOverride)
	}
	from, err := parseMonthDay(rec[0])
	if err != nil {
		return fmt.Errorf("row %d: %w: %q", p.row, ErrBadOverride, rec[0])
	}
	to, err := parseMonthDay(rec[1])
	if err != nil {
		return fmt.Errorf("row %d: %w: %q", p.row, ErrBadOverride, rec[1])
	}
	// Duplicate source days keep the last row.
	p.sched.Overrides[from] = to
	return nil
}

// parseDayCell interprets an entries cell as either a literal day number
// or a weekday rule.
func parseDayCell(cell string) (DaySpec, bool) {
	if n, err := parseNonNegative(cell); err == nil {
		return DayOfMonth(n), true
	}
	if w, ok := ParseWeekday(cell); ok {
		return EveryWeekday(w), true
	}
	return DaySpec{}, false
}

// parseMonthDay parses a "day/month" cell, the field order used in the
// override section.
func parseMonthDay(cell string) (MonthDay, error) {
	parts := strings.Split(cell, "/")
	if len(parts) < 2 {
		return MonthDay{}, fmt.Errorf("expected day/month, got %q", cell)
	}
	day, err := parseNonNegative(parts[0])
	if err != nil {
		return MonthDay{}, err
	}
	month, err := parseNonNegative(parts[1])
	if err != nil {
		return MonthDay{}, err
	}
	return MonthDay{Month: time.Month(month), Day: day}, nil
}

// parseNonNegative parses a cell as an unsigned decimal number.
func parseNonNegative(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}
