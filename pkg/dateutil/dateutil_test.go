package dateutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"January", 2025, time.January, 31},
		{"February common year", 2025, time.February, 28},
		{"February leap year", 2024, time.February, 29},
		{"February century non-leap", 1900, time.February, 28},
		{"February 400-year leap", 2000, time.February, 29},
		{"April", 2025, time.April, 30},
		{"December", 2025, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInMonth(tt.year, tt.month); got != tt.want {
				t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestPrevNextMonth(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		prevYear  int
		prevMonth time.Month
		nextYear  int
		nextMonth time.Month
	}{
		{"January rolls back a year", 2025, time.January, 2024, time.December, 2025, time.February},
		{"December rolls forward a year", 2025, time.December, 2025, time.November, 2026, time.January},
		{"mid year", 2025, time.June, 2025, time.May, 2025, time.July},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			py, pm := PrevMonth(tt.year, tt.month)
			if py != tt.prevYear || pm != tt.prevMonth {
				t.Errorf("PrevMonth(%d, %v) = (%d, %v), want (%d, %v)",
					tt.year, tt.month, py, pm, tt.prevYear, tt.prevMonth)
			}

			ny, nm := NextMonth(tt.year, tt.month)
			if ny != tt.nextYear || nm != tt.nextMonth {
				t.Errorf("NextMonth(%d, %v) = (%d, %v), want (%d, %v)",
					tt.year, tt.month, ny, nm, tt.nextYear, tt.nextMonth)
			}
		})
	}
}

func TestFirstWeekday(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"February 2025 starts Saturday", 2025, time.February, 6},
		{"June 2025 starts Sunday", 2025, time.June, 0},
		{"January 2025 starts Wednesday", 2025, time.January, 3},
		{"September 2025 starts Monday", 2025, time.September, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstWeekday(tt.year, tt.month); got != tt.want {
				t.Errorf("FirstWeekday(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2025, 1, 15, 1, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 15, 23, 0, 0, 0, time.UTC)
	c := time.Date(2025, 1, 16, 1, 0, 0, 0, time.UTC)

	if !IsSameDay(a, b) {
		t.Errorf("IsSameDay(%v, %v) = false, want true", a, b)
	}
	if IsSameDay(a, c) {
		t.Errorf("IsSameDay(%v, %v) = true, want false", a, c)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"ISO", "2025-12-25", Date(2025, time.December, 25), false},
		{"dotted", "25.12.2025", Date(2025, time.December, 25), false},
		{"US slashes", "12/25/2025", Date(2025, time.December, 25), false},
		{"compact", "20251225", Date(2025, time.December, 25), false},
		{"garbage", "Christmas", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !IsSameDay(got, tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	if got := DateKey(Date(2025, time.March, 1)); got != "2025-03-01" {
		t.Errorf("DateKey() = %q, want %q", got, "2025-03-01")
	}
}
