package schedule

import "time"

// weekdayTokens lists the weekday spellings found in the sheets: full
// names plus the common abbreviations, with and without diacritics.
// Matching is exact, no case folding.
var weekdayTokens = map[string]time.Weekday{
	"poniedziałek": time.Monday,
	"pon":          time.Monday,
	"poniedzialek": time.Monday,
	"wtorek":       time.Tuesday,
	"wto":          time.Tuesday,
	"środa":        time.Wednesday,
	"śro":          time.Wednesday,
	"sro":          time.Wednesday,
	"czwartek":     time.Thursday,
	"cz":           time.Thursday,
	"czw":          time.Thursday,
	"piątek":       time.Friday,
	"pią":          time.Friday,
	"pia":          time.Friday,
	"pt":           time.Friday,
	"sobota":       time.Saturday,
	"sob":          time.Saturday,
	"niedziela":    time.Sunday,
	"niedz":        time.Sunday,
	"nie":          time.Sunday,
}

// ParseWeekday maps a Polish weekday name or abbreviation to its weekday.
func ParseWeekday(s string) (time.Weekday, bool) {
	w, ok := weekdayTokens[s]
	return w, ok
}
