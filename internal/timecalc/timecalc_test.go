package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/gh-wizard/internal/timecalc"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{25, "25m"},
		{60, "1h 0m"},
		{100, "1h 40m"},
		{125, "2h 5m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatMinutes(tt.minutes)
		if got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-5 * time.Second, "00:00"},
		{61 * time.Second, "01:01"},
		{25 * time.Minute, "25:00"},
		{1500*time.Millisecond + 59*time.Minute, "59:02"},
		{3661 * time.Second, "1:01:01"},
	}
	for _, tt := range tests {
		got := timecalc.FormatClock(tt.d)
		if got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday (week 9).
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	monday, sunday := timecalc.WeekRange(fri)

	wantMonday := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	wantSunday := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)

	if !monday.Equal(wantMonday) {
		t.Errorf("WeekRange monday = %v, want %v", monday, wantMonday)
	}
	if !sunday.Equal(wantSunday) {
		t.Errorf("WeekRange sunday = %v, want %v", sunday, wantSunday)
	}

	// Sundays belong to the week that started six days earlier.
	sun := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	monday, _ = timecalc.WeekRange(sun)
	if !monday.Equal(wantMonday) {
		t.Errorf("WeekRange(sunday) monday = %v, want %v", monday, wantMonday)
	}
}

func TestISOWeekLabel(t *testing.T) {
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	got := timecalc.ISOWeekLabel(fri)
	if got != "2026-W09" {
		t.Errorf("ISOWeekLabel = %q, want %q", got, "2026-W09")
	}
}

func TestDays(t *testing.T) {
	from, to := timecalc.WeekRange(time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC))
	days := timecalc.Days(from, to)
	if len(days) != 7 {
		t.Fatalf("Days = %d entries, want 7", len(days))
	}
	if days[0] != "2026-02-23" || days[6] != "2026-03-01" {
		t.Errorf("Days = %v", days)
	}
}

func TestParseDay(t *testing.T) {
	d, err := timecalc.ParseDay("2026-10-18", time.UTC)
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if timecalc.DayKey(d) != "2026-10-18" {
		t.Errorf("DayKey = %q", timecalc.DayKey(d))
	}
	if _, err := timecalc.ParseDay("18.10.2026", time.UTC); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if !timecalc.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timecalc.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}

func TestGenerateID(t *testing.T) {
	ts := time.Date(2026, 2, 27, 8, 32, 10, 0, time.UTC)
	id := timecalc.GenerateID(ts)
	if len(id) != len("20260227-083210-xxxxx") {
		t.Errorf("GenerateID length = %d, want %d", len(id), len("20260227-083210-xxxxx"))
	}
	if id[:15] != "20260227-083210" {
		t.Errorf("GenerateID prefix = %q, want %q", id[:15], "20260227-083210")
	}
}
