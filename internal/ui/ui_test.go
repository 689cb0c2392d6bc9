package ui_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/gh-wizard/internal/model"
	"github.com/Tiliavir/gh-wizard/internal/priority"
	"github.com/Tiliavir/gh-wizard/internal/timer"
	"github.com/Tiliavir/gh-wizard/internal/ui"
)

func task(id, title string, q model.Quadrant) model.Task {
	return model.Task{ID: id, Title: title, Quadrant: q, Status: model.TaskOpen}
}

func TestRenderMatrixShowsEveryQuadrant(t *testing.T) {
	groups := map[model.Quadrant][]model.Task{
		model.UrgentImportant:    {task("a1", "Fix prod bug", model.UrgentImportant)},
		model.NotUrgentImportant: {task("b2", "Write design doc", model.NotUrgentImportant)},
	}
	out := ui.RenderMatrix(groups, 50)
	for _, want := range []string{"DO FIRST", "SCHEDULE", "DELEGATE", "ELIMINATE", "Fix prod bug", "Write design doc", "No tasks"} {
		if !strings.Contains(out, want) {
			t.Errorf("matrix missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTaskList(t *testing.T) {
	if got := ui.RenderTaskList(nil); got != "No tasks found." {
		t.Errorf("empty list = %q", got)
	}
	done := task("c3", "Old chore", model.NotUrgentNotImportant)
	done.Status = model.TaskDone
	out := ui.RenderTaskList([]model.Task{task("a1", "Fix prod bug", model.UrgentImportant), done})
	if !strings.Contains(out, "[ ] Fix prod bug") || !strings.Contains(out, "[x] Old chore") {
		t.Errorf("unexpected list:\n%s", out)
	}
	if !strings.Contains(out, "critical") {
		t.Errorf("priority label missing:\n%s", out)
	}
}

func TestRenderSession(t *testing.T) {
	now := time.Now()
	s := model.Session{
		ID: "abcd1234", Name: "auth refactor", Status: model.SessionActive,
		CreatedAt: now, LastActive: now, Note: "halfway through the token cache",
		Context:     map[string]string{"repo": "cli/cli", "branch": "auth"},
		Breadcrumbs: []model.Breadcrumb{{At: now, Message: "found the race"}},
	}
	out := ui.RenderSession(s)
	for _, want := range []string{"auth refactor", "halfway through", "branch = auth", "repo = cli/cli", "found the race"} {
		if !strings.Contains(out, want) {
			t.Errorf("session view missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "branch") > strings.Index(out, "repo") {
		t.Errorf("context keys not sorted:\n%s", out)
	}
	if got := ui.RenderSessions(nil); !strings.Contains(got, "No sessions yet") {
		t.Errorf("empty sessions = %q", got)
	}
}

func TestRenderHistory(t *testing.T) {
	id := "t1"
	ivs := []model.Interval{{ID: "i1", Kind: model.KindWork, PlannedMinutes: 25, Status: model.IntervalCompleted, TaskID: &id}}
	out := ui.RenderHistory(ivs)
	if !strings.Contains(out, "work") || !strings.Contains(out, "task t1") {
		t.Errorf("history = %q", out)
	}
	if ui.RenderHistory(nil) != "No pomodoros yet." {
		t.Error("empty history text changed")
	}
}

func TestRenderTimerStatusIdle(t *testing.T) {
	out := ui.RenderTimerStatus(timer.Status{State: timer.Idle, CompletedWork: 2})
	if !strings.Contains(out, "No pomodoro running") || !strings.Contains(out, "2 completed") {
		t.Errorf("idle status = %q", out)
	}
}

// fakeControl serves a queue of statuses and counts toggles.
type fakeControl struct {
	statuses []timer.Status
	paused   int
	resumed  int
	err      error
}

func (f *fakeControl) next() (timer.Status, error) {
	if f.err != nil {
		return timer.Status{}, f.err
	}
	st := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}
	return st, nil
}

func (f *fakeControl) Status() (timer.Status, error) { return f.next() }
func (f *fakeControl) Pause() (timer.Status, error)  { f.paused++; return f.next() }
func (f *fakeControl) Resume() (timer.Status, error) { f.resumed++; return f.next() }

func running(id string, remaining time.Duration, state timer.State) timer.Status {
	iv := model.Interval{ID: id, Kind: model.KindWork, PlannedMinutes: 25, Status: model.IntervalRunning, StartedAt: time.Now()}
	return timer.Status{State: state, Current: &iv, Remaining: remaining}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestCountdownQuitsWhenIntervalCloses(t *testing.T) {
	first := running("w1", 10*time.Minute, timer.Running)
	brk := model.Interval{ID: "b1", Kind: model.KindShortBreak, PlannedMinutes: 5, Status: model.IntervalRunning}
	closed := *first.Current
	closed.Status = model.IntervalCompleted
	after := timer.Status{State: timer.Running, Current: &brk, Transitions: []timer.Transition{{Closed: closed, Started: &brk}}}

	ctl := &fakeControl{statuses: []timer.Status{running("w1", 9*time.Minute, timer.Running), after}}
	var m tea.Model = ui.NewCountdown(ctl, first, "Fix prod bug")

	m, cmd := m.Update(struct{}{})
	if cmd != nil {
		t.Fatal("unexpected command for unknown message")
	}
	if v := m.View(); !strings.Contains(v, "WORK") || !strings.Contains(v, "Fix prod bug") {
		t.Errorf("view = %q", v)
	}

	m, cmd = m.Update(ui.TickForTest())
	if isQuit(cmd) {
		t.Fatal("quit while interval still running")
	}
	m, cmd = m.Update(ui.TickForTest())
	if !isQuit(cmd) {
		t.Fatal("expected quit after interval closed")
	}
	c := m.(ui.Countdown)
	if c.Detached || len(c.Transitions) != 1 || c.Transitions[0].Closed.ID != "w1" {
		t.Errorf("result = %+v", c)
	}
}

func TestCountdownToggleAndDetach(t *testing.T) {
	first := running("w1", 10*time.Minute, timer.Running)
	ctl := &fakeControl{statuses: []timer.Status{running("w1", 10*time.Minute, timer.Paused), running("w1", 10*time.Minute, timer.Running)}}
	var m tea.Model = ui.NewCountdown(ctl, first, "")

	toggle := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}
	m, _ = m.Update(toggle)
	if !strings.Contains(m.View(), "paused") {
		t.Errorf("view after pause = %q", m.View())
	}
	m, _ = m.Update(toggle)
	if ctl.paused != 1 || ctl.resumed != 1 {
		t.Errorf("paused=%d resumed=%d, want 1/1", ctl.paused, ctl.resumed)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !isQuit(cmd) || !m.(ui.Countdown).Detached {
		t.Error("q should detach and quit")
	}
}

func TestCountdownStopsOnError(t *testing.T) {
	ctl := &fakeControl{err: errors.New("disk gone")}
	m, cmd := ui.NewCountdown(ctl, running("w1", time.Minute, timer.Running), "").Update(ui.TickForTest())
	if !isQuit(cmd) || m.(ui.Countdown).Err == nil {
		t.Error("storage error should end the countdown")
	}
}

func TestPercent(t *testing.T) {
	c := ui.NewCountdown(&fakeControl{}, running("w1", 20*time.Minute, timer.Running), "")
	if got := c.Percent(); got < 0.19 || got > 0.21 {
		t.Errorf("Percent = %v, want 0.2", got)
	}
}

func TestRenderSteps(t *testing.T) {
	_, steps := priority.Breakdown("Fix parser crash")
	out := ui.RenderSteps("Fix parser crash", steps)
	for _, want := range []string{"Task Breakdown: Fix parser crash", "1. Reproduce Bug", "~15 min", "Total: 1h 5m"} {
		if !strings.Contains(out, want) {
			t.Errorf("steps missing %q:\n%s", want, out)
		}
	}
}

func TestRenderProgress(t *testing.T) {
	if got := ui.RenderProgress(nil); !strings.Contains(got, "No broken-down tasks") {
		t.Errorf("empty progress = %q", got)
	}
	out := ui.RenderProgress([]priority.Progress{
		{Parent: "Release v2", Done: 6, Total: 6},
		{Parent: "Fix parser crash", Done: 1, Total: 4},
	})
	for _, want := range []string{"✓ Release v2", "6/6 steps", "1/4 steps", "Overall 70.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress missing %q:\n%s", want, out)
		}
	}
}
