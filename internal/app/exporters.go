package app

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"time"

	ics "github.com/arran4/golang-ical"
	str2duration "github.com/xhit/go-str2duration/v2"

	"github.com/klabast/wb-services/harmonogram/internal/schedule"
)

// ParseReminders converts human readable lead times such as "18h" or
// "1d7h30m" into durations before the collection day.
func ParseReminders(values []string) ([]time.Duration, error) {
	var reminders []time.Duration
	for _, value := range values {
		d, err := str2duration.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", ErrInvalidReminder, value, err)
		}
		reminders = append(reminders, d)
	}
	return reminders, nil
}

// GenerateICS renders events as an iCalendar download with one all-day
// event per collection and an optional display alarm per reminder.
func GenerateICS(calName string, year int, events []schedule.Event, reminders []time.Duration) []byte {
	cal := ics.NewCalendar()
	cal.SetProductId(ICSProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName(fmt.Sprintf("%s %d", calName, year))
	cal.SetXWRTimezone(ICSTimezone)

	for _, event := range events {
		vevent := addEvent(cal, event)
		if vevent == nil {
			continue
		}

		for _, lead := range reminders {
			alarm := vevent.AddAlarm()
			alarm.SetAction(ics.ActionDisplay)
			alarm.SetTrigger(formatTrigger(lead))
			alarm.SetProperty(ics.ComponentPropertyDescription, fmt.Sprintf("Przypomnienie: %s", event.Description))
		}
	}

	return []byte(cal.Serialize())
}

// GenerateSubscriptionICS renders events as an iCalendar subscription feed.
// Unlike GenerateICS, this is designed for calendar subscriptions:
// - No VALARM blocks (most calendar apps ignore them in subscriptions)
// - Includes METHOD:PUBLISH and a refresh interval hint
// - No year suffix in the calendar name, since the feed outlives the year
func GenerateSubscriptionICS(calName string, events []schedule.Event) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ICSProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName(calName)
	cal.SetXWRTimezone(ICSTimezone)
	cal.CalendarProperties = append(cal.CalendarProperties, ics.CalendarProperty{
		BaseProperty: ics.BaseProperty{IANAToken: "X-PUBLISHED-TTL", Value: SubscriptionTTL},
	})

	for _, event := range events {
		addEvent(cal, event)
	}

	return []byte(cal.Serialize())
}

// addEvent appends one all-day VEVENT for a collection. Events whose
// date does not parse are skipped. The UID is stable across runs so
// subscribed calendars update instead of duplicating.
func addEvent(cal *ics.Calendar, event schedule.Event) *ics.VEvent {
	eventDate, err := time.Parse("2006-01-02", event.Date)
	if err != nil {
		return nil
	}

	uid := fmt.Sprintf("%s-%s@%s", event.Date, event.Type, ICSDomain)

	vevent := cal.AddEvent(uid)
	vevent.SetDtStampTime(time.Now().UTC())
	vevent.SetAllDayStartAt(eventDate)
	vevent.SetAllDayEndAt(eventDate.AddDate(0, 0, 1))
	vevent.SetSummary(event.Description)
	vevent.SetDescription(event.Description)

	return vevent
}

// formatTrigger renders a reminder lead time as a negative ISO 8601
// duration relative to the event start at midnight. A 30h lead becomes
// "-P1DT6H0M", i.e. 18:00 two days before the collection.
func formatTrigger(lead time.Duration) string {
	totalMinutes := int(lead.Minutes())
	if totalMinutes < 0 {
		totalMinutes = -totalMinutes
	}

	days := totalMinutes / (24 * 60)
	remainingMinutes := totalMinutes % (24 * 60)
	hours := remainingMinutes / 60
	minutes := remainingMinutes % 60

	return fmt.Sprintf("-P%dDT%dH%dM", days, hours, minutes)
}

// GenerateCSV renders events as a CSV table with a Polish header row.
func GenerateCSV(events []schedule.Event) []byte {
	records := [][]string{{"Data", "Rodzaj", "Opis"}}
	for _, event := range events {
		records = append(records, []string{event.Date, event.Type, event.Description})
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		log.Printf("Error writing CSV export: %v", err)
	}
	return buf.Bytes()
}

// GenerateJSON renders events as an indented JSON document.
func GenerateJSON(year int, events []schedule.Event) ([]byte, error) {
	data := map[string]interface{}{
		"year":   year,
		"events": events,
	}
	return json.MarshalIndent(data, "", "  ")
}

// FormatEvents renders events in one of the supported export formats.
func FormatEvents(format, calName string, year int, events []schedule.Event, reminders []time.Duration) ([]byte, error) {
	switch format {
	case FormatICS:
		return GenerateICS(calName, year, events, reminders), nil
	case FormatCSV:
		return GenerateCSV(events), nil
	case FormatJSON:
		return GenerateJSON(year, events)
	default:
		return nil, fmt.Errorf("%s: %q", ErrInvalidFormat, format)
	}
}
