package app

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// handleIndex describes the service and its endpoints.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sched, events := s.snapshot()
	writeJSON(w, map[string]interface{}{
		"service": "harmonogram",
		"year":    sched.Year,
		"events":  len(events),
		"endpoints": []string{
			"/api/config",
			"/api/events",
			"/api/download",
			"/api/subscribe",
		},
	})
}

// handleConfig returns the served year, waste type names and the public
// holidays of that year.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	sched, _ := s.snapshot()

	names := make(map[string]string, len(sched.Names))
	for wasteType, name := range sched.Names {
		names[wasteType.Key()] = name
	}

	config := map[string]interface{}{
		"year":       sched.Year,
		"wasteTypes": names,
		"holidays":   GetPolishHolidays(sched.Year),
	}
	writeJSON(w, config)
}

// handleEvents returns events as JSON
// Query param: types (optional, comma separated type keys)
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sched, events := s.snapshot()
	events = FilterEventsByType(events, r.URL.Query().Get("types"))

	writeJSON(w, map[string]interface{}{
		"year":   sched.Year,
		"events": events,
	})
}

// handleDownload serves the calendar as an attachment
// Query params: format (ics, csv or json; default ics), types, reminders
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sched, events := s.snapshot()

	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatICS
	}

	events = FilterEventsByType(events, r.URL.Query().Get("types"))

	var reminders []time.Duration
	if raw := r.URL.Query().Get("reminders"); raw != "" {
		var err error
		reminders, err = ParseReminders(strings.Split(raw, ","))
		if err != nil {
			http.Error(w, ErrInvalidReminder, http.StatusBadRequest)
			return
		}
	}

	data, err := FormatEvents(format, DefaultCalendarName, sched.Year, events, reminders)
	if err != nil {
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=harmonogram_%d.%s", sched.Year, format))
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing download: %v", err)
	}
}

// handleSubscribe serves the calendar as a subscription feed.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	_, events := s.snapshot()
	events = FilterEventsByType(events, r.URL.Query().Get("types"))

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	// No Content-Disposition header - calendar apps need inline content for subscriptions
	if _, err := w.Write(GenerateSubscriptionICS(DefaultCalendarName, events)); err != nil {
		log.Printf("Error writing subscription feed: %v", err)
	}
}

// handleReload re-reads the sheet from disk and swaps the snapshot.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(); err != nil {
		log.Printf("Error reloading %s: %v", s.inputPath, err)
		http.Error(w, ErrFailedToReload, http.StatusInternalServerError)
		return
	}

	sched, events := s.snapshot()
	log.Printf("Reloaded %s: %d events for %d", s.inputPath, len(events), sched.Year)
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"year":   sched.Year,
		"events": len(events),
	})
}

// contentTypeFor maps an export format to its MIME type.
func contentTypeFor(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	default:
		return "text/calendar; charset=utf-8"
	}
}
