package app

import (
	"fmt"
	"time"

	"github.com/klabast/wb-services/harmonogram/internal/schedule"
)

// GetPolishHolidays returns all statutory public holidays in Poland for
// the given year, keyed by date in YYYY-MM-DD form.
func GetPolishHolidays(year int) map[string]string {
	holidays := make(map[string]string)

	// Fixed holidays
	holidays[formatDate(year, 1, 1)] = "Nowy Rok"
	holidays[formatDate(year, 1, 6)] = "Trzech Króli"
	holidays[formatDate(year, 5, 1)] = "Święto Pracy"
	holidays[formatDate(year, 5, 3)] = "Święto Konstytucji 3 Maja"
	holidays[formatDate(year, 8, 15)] = "Wniebowzięcie Najświętszej Maryi Panny"
	holidays[formatDate(year, 11, 1)] = "Wszystkich Świętych"
	holidays[formatDate(year, 11, 11)] = "Święto Niepodległości"
	holidays[formatDate(year, 12, 25)] = "Boże Narodzenie (pierwszy dzień)"
	holidays[formatDate(year, 12, 26)] = "Boże Narodzenie (drugi dzień)"

	// Wigilia became a statutory holiday starting with 2025
	if year >= 2025 {
		holidays[formatDate(year, 12, 24)] = "Wigilia Bożego Narodzenia"
	}

	// Easter-based holidays (movable)
	easter := calculateEaster(year)

	holidays[formatDateFromTime(easter)] = "Wielkanoc"

	// Poniedziałek Wielkanocny (Easter Monday): Easter + 1 day
	holidays[formatDateFromTime(easter.AddDate(0, 0, 1))] = "Poniedziałek Wielkanocny"

	// Zielone Świątki (Pentecost Sunday): Easter + 49 days
	holidays[formatDateFromTime(easter.AddDate(0, 0, 49))] = "Zielone Świątki"

	// Boże Ciało (Corpus Christi): Easter + 60 days
	holidays[formatDateFromTime(easter.AddDate(0, 0, 60))] = "Boże Ciało"

	return holidays
}

// HolidayConflicts lists events that land on a public holiday. The
// municipality normally moves those dates through the override section
// of the sheet, so anything reported here deserves a manual look.
func HolidayConflicts(events []schedule.Event, holidays map[string]string) []string {
	var conflicts []string
	for _, event := range events {
		if name, ok := holidays[event.Date]; ok {
			conflicts = append(conflicts, fmt.Sprintf("%s: %s falls on %s", event.Date, event.Description, name))
		}
	}
	return conflicts
}

// calculateEaster calculates Easter Sunday using the Meeus/Jones/Butcher algorithm
func calculateEaster(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	// Use noon to avoid timezone issues when formatting to YYYY-MM-DD
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}

// formatDate formats a date as YYYY-MM-DD
func formatDate(year, month, day int) string {
	// Use noon to avoid timezone issues when formatting to YYYY-MM-DD
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// formatDateFromTime formats a time.Time as YYYY-MM-DD
func formatDateFromTime(t time.Time) string {
	return t.Format("2006-01-02")
}
