package ui

import (
	"fmt"
	"strings"

	"github.com/Tiliavir/gh-wizard/internal/model"
	"github.com/Tiliavir/gh-wizard/internal/timecalc"
	"github.com/Tiliavir/gh-wizard/internal/timer"
)

// RenderTimerStatus summarises the timer for the status command.
func RenderTimerStatus(st timer.Status) string {
	if st.Current == nil {
		return fmt.Sprintf("No pomodoro running. %d completed since the last long break.", st.CompletedWork)
	}
	cur := st.Current
	var b strings.Builder
	state := "running"
	if st.State == timer.Paused {
		state = warnStyle.Render("paused")
	}
	fmt.Fprintf(&b, "%s %s\n", PhaseLabel(cur.Kind), state)
	fmt.Fprintf(&b, "  Remaining: %s of %s\n", timecalc.FormatClock(st.Remaining), timecalc.FormatMinutes(cur.PlannedMinutes))
	fmt.Fprintf(&b, "  Ends at:   %s\n", cur.DueAt().Format("15:04"))
	if cur.TaskID != nil {
		fmt.Fprintf(&b, "  Task:      %s\n", *cur.TaskID)
	}
	fmt.Fprintf(&b, "  Completed since last long break: %d", st.CompletedWork)
	return b.String()
}

// RenderHistory lists intervals one per line.
func RenderHistory(intervals []model.Interval) string {
	if len(intervals) == 0 {
		return "No pomodoros yet."
	}
	var b strings.Builder
	for _, iv := range intervals {
		task := ""
		if iv.TaskID != nil {
			task = "  task " + *iv.TaskID
		}
		fmt.Fprintf(&b, "%s  %-11s %3dm  %-9s%s\n",
			iv.StartedAt.Format("2006-01-02 15:04"), iv.Kind, iv.PlannedMinutes, iv.Status, task)
	}
	return strings.TrimRight(b.String(), "\n")
}
