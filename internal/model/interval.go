package model

import "time"

// IntervalKind distinguishes work segments from breaks.
type IntervalKind string

const (
	KindWork       IntervalKind = "work"
	KindShortBreak IntervalKind = "short-break"
	KindLongBreak  IntervalKind = "long-break"
)

// IsBreak reports whether the kind is one of the two break kinds.
func (k IntervalKind) IsBreak() bool {
	return k == KindShortBreak || k == KindLongBreak
}

// IntervalStatus tracks a timer interval from start to close.
type IntervalStatus string

const (
	IntervalRunning   IntervalStatus = "running"
	IntervalPaused    IntervalStatus = "paused"
	IntervalCompleted IntervalStatus = "completed"
	IntervalCancelled IntervalStatus = "cancelled"
)

// TimerPlan holds the durations a pomodoro cycle was started with.
type TimerPlan struct {
	WorkMinutes       int `json:"work_minutes"`
	ShortBreakMinutes int `json:"short_break_minutes"`
	LongBreakMinutes  int `json:"long_break_minutes"`
	LongBreakEvery    int `json:"long_break_every"`
}

// DefaultTimerPlan is the classic 25/5/15 cycle with a long break every fourth pomodoro.
func DefaultTimerPlan() TimerPlan {
	return TimerPlan{WorkMinutes: 25, ShortBreakMinutes: 5, LongBreakMinutes: 15, LongBreakEvery: 4}
}

// Minutes returns the planned length of an interval of the given kind.
func (p TimerPlan) Minutes(kind IntervalKind) int {
	switch kind {
	case KindShortBreak:
		return p.ShortBreakMinutes
	case KindLongBreak:
		return p.LongBreakMinutes
	default:
		return p.WorkMinutes
	}
}

// Interval is one pomodoro work or break segment.
type Interval struct {
	ID             string         `json:"id"`
	Kind           IntervalKind   `json:"kind"`
	StartedAt      time.Time      `json:"started_at"`
	PlannedMinutes int            `json:"planned_minutes"`
	TaskID         *string        `json:"task_id"`
	SessionID      *string        `json:"session_id"`
	Status         IntervalStatus `json:"status"`
	EndedAt        *time.Time     `json:"ended_at"`
	PausedAt       *time.Time     `json:"paused_at"`
	PausedMillis   int64          `json:"paused_ms"`
	Plan           TimerPlan      `json:"plan"`
	// Recorded is set once a completed interval has reached the daily stats.
	Recorded bool `json:"recorded"`
}

// Open reports whether the interval is still running or paused.
func (iv Interval) Open() bool {
	return iv.Status == IntervalRunning || iv.Status == IntervalPaused
}

// Completed reports whether the interval elapsed in full.
func (iv Interval) Completed() bool {
	return iv.Status == IntervalCompleted
}

// Planned is the planned length as a duration.
func (iv Interval) Planned() time.Duration {
	return time.Duration(iv.PlannedMinutes) * time.Minute
}

// Elapsed returns the running time at now, excluding paused time.
func (iv Interval) Elapsed(now time.Time) time.Duration {
	end := now
	if iv.EndedAt != nil {
		end = *iv.EndedAt
	} else if iv.PausedAt != nil {
		end = *iv.PausedAt
	}
	d := end.Sub(iv.StartedAt) - iv.PausedFor()
	if d < 0 {
		return 0
	}
	return d
}

// Remaining returns the time left until the interval elapses.
func (iv Interval) Remaining(now time.Time) time.Duration {
	r := iv.Planned() - iv.Elapsed(now)
	if r < 0 {
		return 0
	}
	return r
}

// DueAt is the wall-clock time a running interval elapses.
func (iv Interval) DueAt() time.Time {
	return iv.StartedAt.Add(iv.Planned() + iv.PausedFor())
}

// PausedFor is the total time spent in closed pauses.
func (iv Interval) PausedFor() time.Duration {
	return time.Duration(iv.PausedMillis) * time.Millisecond
}
