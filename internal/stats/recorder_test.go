package stats_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/gh-wizard/internal/model"
	"github.com/Tiliavir/gh-wizard/internal/stats"
	"github.com/Tiliavir/gh-wizard/internal/storage"
)

var day = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

func newRecorder(t *testing.T) *stats.Recorder {
	t.Helper()
	r := stats.NewRecorder(storage.NewJSONStore(t.TempDir()), nil)
	r.Now = func() time.Time { return day.Add(15 * time.Hour) }
	return r
}

func interval(kind model.IntervalKind, minutes int, status model.IntervalStatus, start time.Time) model.Interval {
	iv := model.Interval{Kind: kind, StartedAt: start, PlannedMinutes: minutes, Status: status}
	if status == model.IntervalCompleted || status == model.IntervalCancelled {
		end := start.Add(time.Duration(minutes) * time.Minute)
		iv.EndedAt = &end
	}
	return iv
}

func TestRecordCompletedWork(t *testing.T) {
	r := newRecorder(t)
	start := day.Add(9 * time.Hour)

	before, err := r.Report(time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if before.Date != "2026-10-18" || before.FocusMinutes != 0 {
		t.Fatalf("empty report = %+v", before)
	}

	if err := r.Record(interval(model.KindWork, 25, model.IntervalCompleted, start)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	after, err := r.Report(time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if after.FocusMinutes != before.FocusMinutes+25 || after.CompletedIntervals != before.CompletedIntervals+1 {
		t.Errorf("after = %+v", after)
	}

	if err := r.Record(interval(model.KindWork, 50, model.IntervalCompleted, start.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
	after, _ = r.Report(day)
	if after.FocusMinutes != 75 || after.CompletedIntervals != 2 || after.LongestFocusMinutes != 50 {
		t.Errorf("after second = %+v", after)
	}
}

func TestRecordIgnoresCancelledAndOpen(t *testing.T) {
	r := newRecorder(t)
	start := day.Add(9 * time.Hour)

	if err := r.Record(interval(model.KindWork, 25, model.IntervalCancelled, start)); err != nil {
		t.Fatal(err)
	}
	if err := r.Record(interval(model.KindWork, 25, model.IntervalRunning, start)); err != nil {
		t.Fatal(err)
	}
	got, _ := r.Report(day)
	if got != (model.DailyStat{Date: "2026-10-18"}) {
		t.Errorf("report changed by cancelled/open intervals: %+v", got)
	}
}

func TestRecordBreaksAndTasks(t *testing.T) {
	r := newRecorder(t)
	start := day.Add(9 * time.Hour)

	r.Record(interval(model.KindShortBreak, 5, model.IntervalCompleted, start))
	r.Record(interval(model.KindLongBreak, 15, model.IntervalCompleted, start))
	if err := r.RecordTaskCompletion(start); err != nil {
		t.Fatal(err)
	}

	got, _ := r.Report(day)
	want := model.DailyStat{Date: "2026-10-18", BreaksTaken: 2, CompletedTasks: 1}
	if got != want {
		t.Errorf("Report = %+v, want %+v", got, want)
	}
}

func TestRecordUsesEndDate(t *testing.T) {
	r := newRecorder(t)
	// Starts before midnight, ends after it.
	start := day.Add(23*time.Hour + 50*time.Minute)
	r.Record(interval(model.KindWork, 25, model.IntervalCompleted, start))

	prev, _ := r.Report(day)
	next, _ := r.Report(day.AddDate(0, 0, 1))
	if prev.FocusMinutes != 0 || next.FocusMinutes != 25 {
		t.Errorf("prev = %+v, next = %+v", prev, next)
	}
}

func TestRangeAndSum(t *testing.T) {
	r := newRecorder(t)
	r.Record(interval(model.KindWork, 25, model.IntervalCompleted, day.Add(9*time.Hour)))
	r.Record(interval(model.KindWork, 30, model.IntervalCompleted, day.AddDate(0, 0, -2).Add(9*time.Hour)))
	r.RecordTaskCompletion(day.AddDate(0, 0, -1))

	records, err := r.Range(day.AddDate(0, 0, -2), day.Add(23*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("Range = %d records, want 3", len(records))
	}
	if records[0].Date != "2026-10-16" || records[2].Date != "2026-10-18" {
		t.Errorf("Range dates = %s..%s", records[0].Date, records[2].Date)
	}

	total := stats.Sum(records)
	if total.FocusMinutes != 55 || total.CompletedIntervals != 2 || total.CompletedTasks != 1 || total.LongestFocusMinutes != 30 {
		t.Errorf("Sum = %+v", total)
	}
}
