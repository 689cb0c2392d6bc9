// Package timer implements the pomodoro focus timer.
//
// The timer has no background process. Its state is the open interval in the
// intervals collection, and every operation first catches the collection up
// with the wall clock: an elapsed work interval is completed, recorded in the
// stats and followed by a break starting where the work ended; an elapsed
// break returns the timer to idle.
package timer

import (
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/Tiliavir/gh-wizard/internal/apperr"
	"github.com/Tiliavir/gh-wizard/internal/model"
	"github.com/Tiliavir/gh-wizard/internal/storage"
	"github.com/Tiliavir/gh-wizard/internal/timecalc"
)

// State is the coarse timer state.
type State string

const (
	Idle    State = "idle"
	Running State = "running"
	Paused  State = "paused"
)

// Tasks is the part of the priority matrix the timer needs.
type Tasks interface {
	Get(id string) (model.Task, error)
	Complete(id string) (model.Task, bool, error)
}

// Recorder receives closed intervals and task completions.
type Recorder interface {
	Record(iv model.Interval) error
	RecordTaskCompletion(at time.Time) error
}

// Sessions tags new work intervals with the active session.
type Sessions interface {
	Current() (*model.Session, error)
}

// Transition is one interval closed while catching up with the clock,
// together with the break it started, if any.
type Transition struct {
	Closed  model.Interval
	Started *model.Interval
}

// Status is a snapshot of the timer.
type Status struct {
	State     State
	Current   *model.Interval
	Remaining time.Duration
	// CompletedWork counts completed work intervals since the last long break.
	CompletedWork int
	// Transitions lists what changed while catching up with the clock.
	Transitions []Transition
}

// Timer drives the pomodoro state machine over a storage.Store.
type Timer struct {
	store    storage.Store
	tasks    Tasks
	stats    Recorder
	sessions Sessions
	log      *slog.Logger
	// Now is the clock; tests replace it.
	Now func() time.Time
}

// New returns a Timer. sessions may be nil.
func New(store storage.Store, tasks Tasks, stats Recorder, sessions Sessions, log *slog.Logger) *Timer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Timer{
		store:    store,
		tasks:    tasks,
		stats:    stats,
		sessions: sessions,
		log:      log.With("component", "timer"),
		Now:      time.Now,
	}
}

func openIndex(intervals []model.Interval) int {
	for i := len(intervals) - 1; i >= 0; i-- {
		if intervals[i].Open() {
			return i
		}
	}
	return -1
}

// workSinceLongBreak counts completed work intervals after the last completed long break.
func workSinceLongBreak(intervals []model.Interval) int {
	n := 0
	for _, iv := range intervals {
		if !iv.Completed() {
			continue
		}
		switch iv.Kind {
		case model.KindWork:
			n++
		case model.KindLongBreak:
			n = 0
		}
	}
	return n
}

func nextBreak(intervals []model.Interval, plan model.TimerPlan) model.IntervalKind {
	if plan.LongBreakEvery > 0 && workSinceLongBreak(intervals) >= plan.LongBreakEvery {
		return model.KindLongBreak
	}
	return model.KindShortBreak
}

func newInterval(kind model.IntervalKind, start time.Time, plan model.TimerPlan) model.Interval {
	return model.Interval{
		ID:             timecalc.GenerateID(start),
		Kind:           kind,
		StartedAt:      start,
		PlannedMinutes: plan.Minutes(kind),
		Status:         model.IntervalRunning,
		Plan:           plan,
	}
}

// catchUp closes every interval that elapsed before now.
func catchUp(intervals []model.Interval, now time.Time) ([]model.Interval, []Transition) {
	var transitions []Transition
	for {
		i := openIndex(intervals)
		if i < 0 || intervals[i].Status != model.IntervalRunning {
			return intervals, transitions
		}
		due := intervals[i].DueAt()
		if now.Before(due) {
			return intervals, transitions
		}
		intervals[i].Status = model.IntervalCompleted
		intervals[i].EndedAt = &due
		tr := Transition{Closed: intervals[i]}
		if intervals[i].Kind == model.KindWork {
			plan := intervals[i].Plan
			next := newInterval(nextBreak(intervals, plan), due, plan)
			next.SessionID = intervals[i].SessionID
			intervals = append(intervals, next)
			tr.Started = &next
		}
		transitions = append(transitions, tr)
	}
}

// load reads the intervals and catches them up with the clock. Completed
// intervals that have not reached the stats yet are recorded before the
// collection is saved; one that fails to record stays pending and is retried
// on the next load.
func (t *Timer) load(now time.Time) ([]model.Interval, []Transition, error) {
	intervals, err := storage.Load[model.Interval](t.store, storage.Intervals)
	if err != nil {
		return nil, nil, err
	}
	intervals, transitions := catchUp(intervals, now)
	for _, tr := range transitions {
		t.log.Info("interval elapsed", "id", tr.Closed.ID, "kind", tr.Closed.Kind, "minutes", tr.Closed.PlannedMinutes)
	}

	dirty := len(transitions) > 0
	for i := range intervals {
		if !intervals[i].Completed() || intervals[i].Recorded {
			continue
		}
		if err := t.stats.Record(intervals[i]); err != nil {
			if dirty {
				if saveErr := t.save(intervals); saveErr != nil {
					t.log.Error("saving intervals after failed record", "err", saveErr)
				}
			}
			return nil, nil, err
		}
		intervals[i].Recorded = true
		dirty = true
	}
	if dirty {
		if err := t.save(intervals); err != nil {
			return nil, nil, err
		}
	}
	return intervals, transitions, nil
}

func (t *Timer) save(intervals []model.Interval) error {
	return storage.Save(t.store, storage.Intervals, intervals)
}

func snapshot(intervals []model.Interval, transitions []Transition, now time.Time) Status {
	st := Status{State: Idle, CompletedWork: workSinceLongBreak(intervals), Transitions: transitions}
	if i := openIndex(intervals); i >= 0 {
		cur := intervals[i]
		st.Current = &cur
		st.Remaining = cur.Remaining(now)
		st.State = Running
		if cur.Status == model.IntervalPaused {
			st.State = Paused
		}
	}
	return st
}

// Status catches the timer up with the clock and reports where it stands.
func (t *Timer) Status() (Status, error) {
	now := t.Now()
	intervals, transitions, err := t.load(now)
	if err != nil {
		return Status{}, err
	}
	return snapshot(intervals, transitions, now), nil
}

// Start begins a work interval, optionally bound to a task.
func (t *Timer) Start(plan model.TimerPlan, taskID string) (Status, error) {
	if plan.WorkMinutes <= 0 || plan.ShortBreakMinutes <= 0 || plan.LongBreakMinutes <= 0 {
		return Status{}, apperr.Validation("durations must be positive (work %d, short %d, long %d)",
			plan.WorkMinutes, plan.ShortBreakMinutes, plan.LongBreakMinutes)
	}
	if plan.LongBreakEvery < 1 {
		return Status{}, apperr.Validation("long break cadence must be at least 1, got %d", plan.LongBreakEvery)
	}

	now := t.Now()
	intervals, transitions, err := t.load(now)
	if err != nil {
		return Status{}, err
	}
	if i := openIndex(intervals); i >= 0 {
		return Status{}, apperr.Conflict("a %s interval is already %s; cancel it first", intervals[i].Kind, intervals[i].Status)
	}

	iv := newInterval(model.KindWork, now, plan)
	if taskID != "" {
		task, err := t.tasks.Get(taskID)
		if err != nil {
			return Status{}, err
		}
		if task.Done() {
			return Status{}, apperr.Validation("task %s is already done", task.ID)
		}
		iv.TaskID = &task.ID
	}
	if t.sessions != nil {
		cur, err := t.sessions.Current()
		if err != nil {
			return Status{}, err
		}
		if cur != nil {
			iv.SessionID = &cur.ID
		}
	}

	intervals = append(intervals, iv)
	if err := t.save(intervals); err != nil {
		return Status{}, err
	}
	t.log.Info("pomodoro started", "id", iv.ID, "minutes", iv.PlannedMinutes, "task", taskID)
	return snapshot(intervals, transitions, now), nil
}

// Pause freezes the running interval. Pausing a paused interval changes nothing.
func (t *Timer) Pause() (Status, error) {
	return t.mutateOpen(func(iv *model.Interval, now time.Time) bool {
		if iv.Status != model.IntervalRunning {
			return false
		}
		iv.Status = model.IntervalPaused
		iv.PausedAt = &now
		return true
	})
}

// Resume continues a paused interval. Resuming a running interval changes nothing.
func (t *Timer) Resume() (Status, error) {
	return t.mutateOpen(func(iv *model.Interval, now time.Time) bool {
		if iv.Status != model.IntervalPaused || iv.PausedAt == nil {
			return false
		}
		iv.PausedMillis += now.Sub(*iv.PausedAt).Milliseconds()
		iv.PausedAt = nil
		iv.Status = model.IntervalRunning
		return true
	})
}

// Cancel discards the open interval. It is kept in the history as cancelled
// and never reaches the stats.
func (t *Timer) Cancel() (model.Interval, error) {
	var cancelled model.Interval
	_, err := t.mutateOpen(func(iv *model.Interval, now time.Time) bool {
		if iv.PausedAt != nil {
			iv.PausedMillis += now.Sub(*iv.PausedAt).Milliseconds()
			iv.PausedAt = nil
		}
		iv.Status = model.IntervalCancelled
		iv.EndedAt = &now
		cancelled = *iv
		return true
	})
	if err != nil {
		return model.Interval{}, err
	}
	return cancelled, nil
}

func (t *Timer) mutateOpen(fn func(iv *model.Interval, now time.Time) bool) (Status, error) {
	now := t.Now()
	intervals, transitions, err := t.load(now)
	if err != nil {
		return Status{}, err
	}
	i := openIndex(intervals)
	if i < 0 {
		return Status{}, apperr.NotFound("no pomodoro is running")
	}
	if fn(&intervals[i], now) {
		if err := t.save(intervals); err != nil {
			return Status{}, err
		}
		t.log.Info("interval updated", "id", intervals[i].ID, "status", intervals[i].Status)
	}
	return snapshot(intervals, transitions, now), nil
}

// CompleteTask marks the task bound to the most recently completed work
// interval as done. A task completion is recorded only when the task changed.
func (t *Timer) CompleteTask() (model.Task, bool, error) {
	now := t.Now()
	intervals, _, err := t.load(now)
	if err != nil {
		return model.Task{}, false, err
	}
	var last *model.Interval
	for i := len(intervals) - 1; i >= 0; i-- {
		if intervals[i].Kind == model.KindWork && intervals[i].Completed() {
			last = &intervals[i]
			break
		}
	}
	if last == nil {
		return model.Task{}, false, apperr.NotFound("no completed pomodoro yet")
	}
	if last.TaskID == nil {
		return model.Task{}, false, apperr.NotFound("the last completed pomodoro was not bound to a task")
	}
	task, changed, err := t.tasks.Complete(*last.TaskID)
	if err != nil {
		return model.Task{}, false, err
	}
	if changed {
		if err := t.stats.RecordTaskCompletion(now); err != nil {
			return model.Task{}, false, err
		}
	}
	return task, changed, nil
}

// History returns up to limit intervals, newest first. limit <= 0 returns all.
func (t *Timer) History(limit int) ([]model.Interval, error) {
	intervals, _, err := t.load(t.Now())
	if err != nil {
		return nil, err
	}
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].StartedAt.After(intervals[j].StartedAt)
	})
	if limit > 0 && len(intervals) > limit {
		intervals = intervals[:limit]
	}
	return intervals, nil
}
