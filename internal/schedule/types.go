// Package schedule parses the PUK Piaseczno waste collection sheets and
// expands them into concrete collection dates for a single year.
package schedule

import "time"

// WasteType identifies one of the seven waste categories, in the column
// group order of the sheet.
type WasteType int

const (
	Mixed WasteType = iota
	MetalsPlastics
	Paper
	Glass
	Bio
	Bulky
	ChristmasTrees

	numWasteTypes = 7
)

// wasteTypeKeys maps each category to its stable identifier, used in
// exports and type filters.
var wasteTypeKeys = [numWasteTypes]string{
	Mixed:          "zmieszane",
	MetalsPlastics: "metale_tworzywa",
	Paper:          "papier",
	Glass:          "szklo",
	Bio:            "bio",
	Bulky:          "gabaryty",
	ChristmasTrees: "choinki",
}

// Key returns the stable identifier for the waste type.
func (t WasteType) Key() string {
	if t < 0 || t >= numWasteTypes {
		return "unknown"
	}
	return wasteTypeKeys[t]
}

// AllWasteTypes returns every category in sheet order.
func AllWasteTypes() []WasteType {
	types := make([]WasteType, numWasteTypes)
	for i := range types {
		types[i] = WasteType(i)
	}
	return types
}

// MonthDay is a day of the schedule year, used as the override table key.
type MonthDay struct {
	Month time.Month
	Day   int
}

type daySpecKind int

const (
	literalDay daySpecKind = iota
	everyWeekday
)

// DaySpec describes which days of a month a collection rule covers:
// either a single literal day or every occurrence of a weekday.
type DaySpec struct {
	kind    daySpecKind
	day     int
	weekday time.Weekday
}

// DayOfMonth returns a DaySpec for a single day number.
func DayOfMonth(day int) DaySpec {
	return DaySpec{kind: literalDay, day: day}
}

// EveryWeekday returns a DaySpec covering all occurrences of w in a month.
func EveryWeekday(w time.Weekday) DaySpec {
	return DaySpec{kind: everyWeekday, weekday: w}
}

// Entry is a single collection rule from the entries section of the sheet.
type Entry struct {
	Month time.Month
	Day   DaySpec
	Type  WasteType
}

// Schedule is the parsed content of one year's collection sheet.
type Schedule struct {
	Year      int
	Names     map[WasteType]string
	Entries   []Entry
	Overrides map[MonthDay]MonthDay
}
