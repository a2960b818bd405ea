package app

import (
	"strings"
	"testing"
	"time"

	"github.com/klabast/wb-services/harmonogram/internal/schedule"
)

func TestCalculateEaster(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2023, time.April, 9},
		{2024, time.March, 31},
		{2025, time.April, 20},
		{2026, time.April, 5},
	}

	for _, tt := range tests {
		got := calculateEaster(tt.year)
		if got.Year() != tt.year || got.Month() != tt.month || got.Day() != tt.day {
			t.Errorf("calculateEaster(%d) = %s, want %04d-%02d-%02d",
				tt.year, got.Format("2006-01-02"), tt.year, tt.month, tt.day)
		}
	}
}

func TestGetPolishHolidays2024(t *testing.T) {
	holidays := GetPolishHolidays(2024)

	expected := map[string]string{
		"2024-01-01": "Nowy Rok",
		"2024-01-06": "Trzech Króli",
		"2024-03-31": "Wielkanoc",
		"2024-04-01": "Poniedziałek Wielkanocny",
		"2024-05-01": "Święto Pracy",
		"2024-05-03": "Święto Konstytucji 3 Maja",
		"2024-05-19": "Zielone Świątki",
		"2024-05-30": "Boże Ciało",
		"2024-08-15": "Wniebowzięcie Najświętszej Maryi Panny",
		"2024-11-01": "Wszystkich Świętych",
		"2024-11-11": "Święto Niepodległości",
		"2024-12-25": "Boże Narodzenie (pierwszy dzień)",
		"2024-12-26": "Boże Narodzenie (drugi dzień)",
	}

	for date, name := range expected {
		if got := holidays[date]; got != name {
			t.Errorf("holidays[%s] = %q, want %q", date, got, name)
		}
	}

	if len(holidays) != len(expected) {
		t.Errorf("Expected %d holidays in 2024, got %d", len(expected), len(holidays))
	}
}

func TestGetPolishHolidaysWigilia(t *testing.T) {
	// Wigilia only counts from 2025 onwards
	if _, ok := GetPolishHolidays(2024)["2024-12-24"]; ok {
		t.Error("Wigilia should not be a holiday in 2024")
	}

	if name := GetPolishHolidays(2025)["2025-12-24"]; name != "Wigilia Bożego Narodzenia" {
		t.Errorf("holidays[2025-12-24] = %q, want Wigilia Bożego Narodzenia", name)
	}
}

func TestHolidayConflicts(t *testing.T) {
	holidays := GetPolishHolidays(2025)

	events := []schedule.Event{
		{Date: "2025-01-06", Type: "papier", Description: "Papier"},
		{Date: "2025-01-07", Type: "bio", Description: "Bioodpady"},
	}

	conflicts := HolidayConflicts(events, holidays)
	if len(conflicts) != 1 {
		t.Fatalf("Expected 1 conflict, got %d: %v", len(conflicts), conflicts)
	}

	if !strings.Contains(conflicts[0], "2025-01-06") || !strings.Contains(conflicts[0], "Trzech Króli") {
		t.Errorf("Conflict should name the date and the holiday, got %q", conflicts[0])
	}
}

func TestHolidayConflictsNone(t *testing.T) {
	events := []schedule.Event{
		{Date: "2025-01-07", Type: "bio", Description: "Bioodpady"},
	}

	if conflicts := HolidayConflicts(events, GetPolishHolidays(2025)); len(conflicts) != 0 {
		t.Errorf("Expected no conflicts, got %v", conflicts)
	}
}
