package utils

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	in := time.Date(2024, 3, 10, 23, 45, 12, 99, loc)

	got := DateOf(in)
	if !got.Equal(date(2024, 3, 10)) {
		t.Errorf("DateOf() = %v, want 2024-03-10 UTC", got)
	}
	if got.Location() != time.UTC {
		t.Errorf("DateOf() location = %v, want UTC", got.Location())
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2023, time.February, 28},
		{2024, time.February, 29},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"back one month", date(2024, 5, 15), -1, date(2024, 4, 15)},
		{"clamp 31 to 30", date(2024, 5, 31), -1, date(2024, 4, 30)},
		{"clamp to non-leap february", date(2023, 3, 31), -1, date(2023, 2, 28)},
		{"clamp to leap february", date(2024, 3, 30), -1, date(2024, 2, 29)},
		{"across year boundary", date(2024, 1, 31), -1, date(2023, 12, 31)},
		{"two years back", date(2024, 1, 15), -25, date(2021, 12, 15)},
		{"forward", date(2023, 1, 31), 1, date(2023, 2, 28)},
		{"forward across year", date(2023, 12, 5), 2, date(2024, 2, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonthsClamped(tt.in, tt.n); !got.Equal(tt.want) {
				t.Errorf("AddMonthsClamped(%s, %d) = %s, want %s",
					FormatDate(tt.in), tt.n, FormatDate(got), FormatDate(tt.want))
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	late := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", date(2024, 3, 10), date(2024, 3, 10), 0},
		{"forward", date(2024, 2, 27), date(2024, 3, 1), 3},
		{"backward", date(2024, 3, 1), date(2024, 2, 27), -3},
		{"local time keeps its own date", late, date(2024, 3, 10), 1},
		{"time of day ignored", date(2024, 3, 9).Add(23 * time.Hour), date(2024, 3, 10), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(date(2024, 2, 17))
	if !start.Equal(date(2024, 2, 1)) || !end.Equal(date(2024, 2, 29)) {
		t.Errorf("MonthBounds() = %s..%s, want 2024-02-01..2024-02-29", FormatDate(start), FormatDate(end))
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Error("expected error for invalid month")
	}
	got, err := ParseDate("2024-01-07")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if !got.Equal(date(2024, 1, 7)) {
		t.Errorf("ParseDate() = %v", got)
	}
}

func TestValidateTimeFormat(t *testing.T) {
	tests := map[string]bool{
		"08:00": true,
		"23:59": true,
		"24:00": false,
		"8am":   false,
		"":      false,
	}
	for in, want := range tests {
		if got := ValidateTimeFormat(in); got != want {
			t.Errorf("ValidateTimeFormat(%q) = %v, want %v", in, got, want)
		}
	}
}
