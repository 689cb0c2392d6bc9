// Package stats aggregates completed focus intervals and tasks into daily counters.
package stats

import (
	"io"
	"log/slog"
	"time"

	"github.com/Tiliavir/gh-wizard/internal/model"
	"github.com/Tiliavir/gh-wizard/internal/storage"
	"github.com/Tiliavir/gh-wizard/internal/timecalc"
)

// Recorder persists daily stat records through a storage.Store.
type Recorder struct {
	store storage.Store
	log   *slog.Logger
	// Now is the clock; tests replace it.
	Now func() time.Time
}

// NewRecorder returns a Recorder backed by store.
func NewRecorder(store storage.Store, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Recorder{store: store, log: log.With("component", "stats"), Now: time.Now}
}

// Record adds a closed interval to the day it ended on. Completed work
// intervals add their planned minutes to the focus total; completed breaks
// count as breaks taken. Open and cancelled intervals are ignored.
func (r *Recorder) Record(iv model.Interval) error {
	if !iv.Completed() || iv.EndedAt == nil {
		return nil
	}
	return r.update(*iv.EndedAt, func(s *model.DailyStat) {
		if iv.Kind.IsBreak() {
			s.BreaksTaken++
			return
		}
		s.FocusMinutes += iv.PlannedMinutes
		s.CompletedIntervals++
		if iv.PlannedMinutes > s.LongestFocusMinutes {
			s.LongestFocusMinutes = iv.PlannedMinutes
		}
	})
}

// RecordTaskCompletion counts one completed task on the day of at.
func (r *Recorder) RecordTaskCompletion(at time.Time) error {
	return r.update(at, func(s *model.DailyStat) {
		s.CompletedTasks++
	})
}

func (r *Recorder) update(at time.Time, fn func(*model.DailyStat)) error {
	records, err := storage.Load[model.DailyStat](r.store, storage.Stats)
	if err != nil {
		return err
	}
	key := timecalc.DayKey(at)
	i := -1
	for j := range records {
		if records[j].Date == key {
			i = j
			break
		}
	}
	if i < 0 {
		records = append(records, model.DailyStat{Date: key})
		i = len(records) - 1
	}
	fn(&records[i])
	if err := storage.Save(r.store, storage.Stats, records); err != nil {
		return err
	}
	r.log.Debug("stats updated", "date", key, "focus_minutes", records[i].FocusMinutes,
		"intervals", records[i].CompletedIntervals, "tasks", records[i].CompletedTasks)
	return nil
}

// Report returns the record for the day of at, or today when at is zero.
// Days without activity yield a zero record.
func (r *Recorder) Report(at time.Time) (model.DailyStat, error) {
	if at.IsZero() {
		at = r.Now()
	}
	records, err := storage.Load[model.DailyStat](r.store, storage.Stats)
	if err != nil {
		return model.DailyStat{}, err
	}
	key := timecalc.DayKey(at)
	for _, s := range records {
		if s.Date == key {
			return s, nil
		}
	}
	return model.DailyStat{Date: key}, nil
}

// Range returns one record per day in [from, to], zero records included.
func (r *Recorder) Range(from, to time.Time) ([]model.DailyStat, error) {
	records, err := storage.Load[model.DailyStat](r.store, storage.Stats)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]model.DailyStat, len(records))
	for _, s := range records {
		byDate[s.Date] = s
	}
	days := timecalc.Days(from, to)
	out := make([]model.DailyStat, 0, len(days))
	for _, key := range days {
		s, ok := byDate[key]
		if !ok {
			s = model.DailyStat{Date: key}
		}
		out = append(out, s)
	}
	return out, nil
}

// Sum adds up a range of records. The result has no date.
func Sum(records []model.DailyStat) model.DailyStat {
	var total model.DailyStat
	for _, s := range records {
		total.FocusMinutes += s.FocusMinutes
		total.CompletedTasks += s.CompletedTasks
		total.CompletedIntervals += s.CompletedIntervals
		total.BreaksTaken += s.BreaksTaken
		if s.LongestFocusMinutes > total.LongestFocusMinutes {
			total.LongestFocusMinutes = s.LongestFocusMinutes
		}
	}
	return total
}
