package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/gh-wizard/internal/model"
	"github.com/Tiliavir/gh-wizard/internal/timecalc"
	"github.com/Tiliavir/gh-wizard/internal/timer"
)

// TimerControl is what the countdown needs from the focus timer.
type TimerControl interface {
	Status() (timer.Status, error)
	Pause() (timer.Status, error)
	Resume() (timer.Status, error)
}

type countdownKeys struct {
	Toggle key.Binding
	Quit   key.Binding
}

func (k countdownKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Toggle, k.Quit} }
func (k countdownKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var defaultCountdownKeys = countdownKeys{
	Toggle: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/resume")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "detach")),
}

type countdownTickMsg struct{}

func countdownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return countdownTickMsg{} })
}

// Countdown is a bubbletea model that follows one interval until it closes.
type Countdown struct {
	ctl       TimerControl
	watchID   string
	taskTitle string
	status    timer.Status
	bar       progress.Model
	help      help.Model
	keys      countdownKeys

	// Transitions collects every interval closed while watching.
	Transitions []timer.Transition
	// Detached is set when the user left before the interval closed.
	Detached bool
	Err      error
}

// NewCountdown follows the interval that is open in st.
func NewCountdown(ctl TimerControl, st timer.Status, taskTitle string) Countdown {
	c := Countdown{
		ctl:       ctl,
		taskTitle: taskTitle,
		status:    st,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:      help.New(),
		keys:      defaultCountdownKeys,
	}
	if st.Current != nil {
		c.watchID = st.Current.ID
	}
	return c
}

func (c Countdown) Init() tea.Cmd {
	return countdownTick()
}

func (c Countdown) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, c.keys.Quit):
			c.Detached = true
			return c, tea.Quit
		case key.Matches(msg, c.keys.Toggle):
			op := c.ctl.Pause
			if c.status.State == timer.Paused {
				op = c.ctl.Resume
			}
			return c.apply(op())
		}
	case countdownTickMsg:
		next, cmd := c.apply(c.ctl.Status())
		if cmd != nil {
			return next, cmd
		}
		return next, countdownTick()
	case tea.WindowSizeMsg:
		c.bar.Width = min(60, max(10, msg.Width-10))
	}
	return c, nil
}

// apply folds a fresh status into the model and quits once the watched
// interval is no longer open.
func (c Countdown) apply(st timer.Status, err error) (Countdown, tea.Cmd) {
	if err != nil {
		c.Err = err
		return c, tea.Quit
	}
	c.Transitions = append(c.Transitions, st.Transitions...)
	c.status = st
	if st.Current == nil || st.Current.ID != c.watchID {
		return c, tea.Quit
	}
	return c, nil
}

// Percent is the elapsed share of the watched interval.
func (c Countdown) Percent() float64 {
	cur := c.status.Current
	if cur == nil || cur.ID != c.watchID || cur.PlannedMinutes <= 0 {
		return 1
	}
	planned := cur.Planned()
	return float64(planned-c.status.Remaining) / float64(planned)
}

func (c Countdown) View() string {
	cur := c.status.Current
	if cur == nil || cur.ID != c.watchID {
		return ""
	}
	var b strings.Builder
	b.WriteString(PhaseLabel(cur.Kind))
	if c.status.State == timer.Paused {
		b.WriteString(warnStyle.Render("  (paused)"))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %s\n", headerStyle.Render(timecalc.FormatClock(c.status.Remaining)))
	fmt.Fprintf(&b, "  %s\n", c.bar.ViewAs(c.Percent()))
	if c.taskTitle != "" {
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render("Task: "+c.taskTitle))
	}
	fmt.Fprintf(&b, "\n  %s\n", c.help.View(c.keys))
	return b.String()
}

// PhaseLabel names an interval kind for display.
func PhaseLabel(kind model.IntervalKind) string {
	switch kind {
	case model.KindShortBreak:
		return okStyle.Render("SHORT BREAK")
	case model.KindLongBreak:
		return okStyle.Render("LONG BREAK")
	default:
		return errorStyle.Render("WORK")
	}
}

// Watch blocks with a live countdown until the open interval in st closes
// or the user detaches.
func Watch(ctl TimerControl, st timer.Status, taskTitle string) (Countdown, error) {
	final, err := tea.NewProgram(NewCountdown(ctl, st, taskTitle)).Run()
	if err != nil {
		return Countdown{}, fmt.Errorf("running countdown: %w", err)
	}
	c := final.(Countdown)
	return c, c.Err
}
