package app

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/klabast/wb-services/harmonogram/internal/schedule"
)

// SortEventsByDate sorts events by date in ascending order.
func SortEventsByDate(events []schedule.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
}

// FilterEventsByType keeps events whose type key appears in the comma
// separated filter. An empty filter keeps everything.
func FilterEventsByType(events []schedule.Event, filter string) []schedule.Event {
	if filter == "" {
		return events
	}

	wanted := make(map[string]bool)
	for _, key := range strings.Split(filter, ",") {
		if key = strings.TrimSpace(key); key != "" {
			wanted[key] = true
		}
	}

	filtered := []schedule.Event{}
	for _, event := range events {
		if wanted[event.Type] {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// writeJSON encodes v and writes it to w as a JSON response.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
