package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/gh-wizard/internal/model"
	"github.com/Tiliavir/gh-wizard/internal/timecalc"
	"github.com/Tiliavir/gh-wizard/internal/timer"
	"github.com/Tiliavir/gh-wizard/internal/ui"
)

var (
	pomoWork    int
	pomoShort   int
	pomoLong    int
	pomoEvery   int
	pomoTask    string
	pomoWatch   bool
	historySize int
)

var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro",
	Aliases: []string{"pomo", "focus"},
	Short:   "Run a pomodoro focus timer",
	Long: `Run a pomodoro focus timer. The timer lives in the data directory, so it
keeps running between invocations: when a work interval elapses the break
starts on its own, and the next command you run reports it.`,
}

var pomodoroStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a work interval",
	Args:  cobra.NoArgs,
	RunE:  runPomodoroStart,
}

var pomodoroWorkOnCmd = &cobra.Command{
	Use:   "work-on <task-id>",
	Short: "Start a work interval bound to a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runPomodoroWorkOn,
}

var pomodoroStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the timer state",
	Args:  cobra.NoArgs,
	RunE:  runPomodoroStatus,
}

var pomodoroPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running interval",
	Args:  cobra.NoArgs,
	RunE:  runPomodoroPause,
}

var pomodoroResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume the paused interval",
	Args:  cobra.NoArgs,
	RunE:  runPomodoroResume,
}

var pomodoroCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the current interval without recording it",
	Args:  cobra.NoArgs,
	RunE:  runPomodoroCancel,
}

var pomodoroCompleteTaskCmd = &cobra.Command{
	Use:   "complete-task",
	Short: "Mark the task of the last finished pomodoro as done",
	Args:  cobra.NoArgs,
	RunE:  runPomodoroCompleteTask,
}

var pomodoroWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the current interval with a live countdown",
	Args:  cobra.NoArgs,
	RunE:  runPomodoroWatch,
}

var pomodoroHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past intervals, newest first",
	Args:  cobra.NoArgs,
	RunE:  runPomodoroHistory,
}

func init() {
	for _, c := range []*cobra.Command{pomodoroStartCmd, pomodoroWorkOnCmd} {
		c.Flags().IntVar(&pomoWork, "work", 0, "Work minutes (default from config)")
		c.Flags().IntVar(&pomoShort, "short", 0, "Short break minutes (default from config)")
		c.Flags().IntVar(&pomoLong, "long", 0, "Long break minutes (default from config)")
		c.Flags().IntVar(&pomoEvery, "every", 0, "Long break after this many pomodoros (default from config)")
		c.Flags().BoolVarP(&pomoWatch, "watch", "w", false, "Block with a live countdown")
	}
	pomodoroStartCmd.Flags().StringVarP(&pomoTask, "task", "t", "", "Bind the pomodoro to a task id")
	pomodoroHistoryCmd.Flags().IntVarP(&historySize, "limit", "n", 10, "Number of intervals to show (0 for all)")

	pomodoroCmd.AddCommand(pomodoroStartCmd, pomodoroWorkOnCmd, pomodoroStatusCmd, pomodoroPauseCmd,
		pomodoroResumeCmd, pomodoroCancelCmd, pomodoroCompleteTaskCmd, pomodoroWatchCmd, pomodoroHistoryCmd)
}

// timerPlan applies the per-invocation flags on top of the configured plan.
func timerPlan(base model.TimerPlan) model.TimerPlan {
	if pomoWork != 0 {
		base.WorkMinutes = pomoWork
	}
	if pomoShort != 0 {
		base.ShortBreakMinutes = pomoShort
	}
	if pomoLong != 0 {
		base.LongBreakMinutes = pomoLong
	}
	if pomoEvery != 0 {
		base.LongBreakEvery = pomoEvery
	}
	return base
}

// reportTransitions announces intervals that closed since the last command.
// title resolves the task a finished work interval was bound to.
func reportTransitions(w io.Writer, transitions []timer.Transition, completedWork int, quiet bool, title func(taskID string) string) {
	if len(transitions) == 0 {
		return
	}
	if !quiet {
		fmt.Fprint(w, "\a")
	}
	for _, tr := range transitions {
		closed := tr.Closed
		if closed.Kind == model.KindWork {
			fmt.Fprintln(w, ui.Success(fmt.Sprintf("Pomodoro complete: %s of focus recorded (ended %s).",
				timecalc.FormatMinutes(closed.PlannedMinutes), closed.EndedAt.Format("15:04"))))
			if closed.TaskID != nil {
				fmt.Fprintf(w, "  Worked on %q. Mark it done with: gh wizard pomodoro complete-task\n", title(*closed.TaskID))
			}
		} else {
			fmt.Fprintf(w, "Break over at %s. Ready for the next pomodoro.\n", closed.EndedAt.Format("15:04"))
		}
		if tr.Started != nil {
			fmt.Fprintf(w, "%s started: %s\n", ui.PhaseLabel(tr.Started.Kind), timecalc.FormatMinutes(tr.Started.PlannedMinutes))
			fmt.Fprintf(w, "  Suggestion: %s\n", timer.BreakSuggestion(completedWork))
		}
	}
}

func startPomodoro(cmd *cobra.Command, taskID string) error {
	return withApp(func(a *app) error {
		st, err := a.timer.Start(timerPlan(a.cfg.Pomodoro.Plan()), taskID)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		reportTransitions(out, st.Transitions, st.CompletedWork, a.cfg.Pomodoro.Quiet, a.taskTitle)
		title := intervalTaskTitle(a, st.Current)
		msg := fmt.Sprintf("Pomodoro started: %s, ends at %s", timecalc.FormatMinutes(st.Current.PlannedMinutes), st.Current.DueAt().Format("15:04"))
		if title != "" {
			msg += fmt.Sprintf(" (working on %q)", title)
		}
		fmt.Fprintln(out, ui.Success(msg))
		if pomoWatch {
			return watch(cmd, a, st)
		}
		return nil
	})
}

// taskTitle names a task, falling back to its id when it is gone.
func (a *app) taskTitle(taskID string) string {
	t, err := a.matrix.Get(taskID)
	if err != nil {
		a.log.Warn("task of interval not found", "task", taskID, "err", err)
		return taskID
	}
	return t.Title
}

func intervalTaskTitle(a *app, iv *model.Interval) string {
	if iv == nil || iv.TaskID == nil {
		return ""
	}
	return a.taskTitle(*iv.TaskID)
}

func watch(cmd *cobra.Command, a *app, st timer.Status) error {
	out := cmd.OutOrStdout()
	if st.Current == nil {
		fmt.Fprintln(out, "No pomodoro running.")
		return nil
	}
	c, err := ui.Watch(a.timer, st, intervalTaskTitle(a, st.Current))
	if err != nil {
		return err
	}
	after, err := a.timer.Status()
	if err != nil {
		return err
	}
	reportTransitions(out, c.Transitions, after.CompletedWork, a.cfg.Pomodoro.Quiet, a.taskTitle)
	if c.Detached {
		fmt.Fprintln(out, ui.Dim("Detached. The timer keeps running; check it with: gh wizard pomodoro status"))
	}
	return nil
}

func runPomodoroStart(cmd *cobra.Command, args []string) error {
	return startPomodoro(cmd, pomoTask)
}

func runPomodoroWorkOn(cmd *cobra.Command, args []string) error {
	return startPomodoro(cmd, args[0])
}

func runPomodoroStatus(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		st, err := a.timer.Status()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		reportTransitions(out, st.Transitions, st.CompletedWork, a.cfg.Pomodoro.Quiet, a.taskTitle)
		fmt.Fprintln(out, ui.RenderTimerStatus(st))
		if title := intervalTaskTitle(a, st.Current); title != "" {
			fmt.Fprintf(out, "  Working on: %s\n", title)
		}
		return nil
	})
}

func runPomodoroPause(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		st, err := a.timer.Pause()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		reportTransitions(out, st.Transitions, st.CompletedWork, a.cfg.Pomodoro.Quiet, a.taskTitle)
		fmt.Fprintf(out, "Paused with %s left.\n", timecalc.FormatClock(st.Remaining))
		return nil
	})
}

func runPomodoroResume(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		st, err := a.timer.Resume()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		reportTransitions(out, st.Transitions, st.CompletedWork, a.cfg.Pomodoro.Quiet, a.taskTitle)
		fmt.Fprintf(out, "Resumed. %s left, ends at %s.\n", timecalc.FormatClock(st.Remaining), st.Current.DueAt().Format("15:04"))
		return nil
	})
}

func runPomodoroCancel(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		iv, err := a.timer.Cancel()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cancelled the %s interval after %s. Nothing was recorded.\n",
			iv.Kind, timecalc.FormatClock(iv.Elapsed(*iv.EndedAt)))
		return nil
	})
}

func runPomodoroCompleteTask(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		t, changed, err := a.timer.CompleteTask()
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintf(cmd.OutOrStdout(), "Task %q was already done.\n", t.Title)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Completed %q", t.Title)))
		return nil
	})
}

func runPomodoroWatch(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		st, err := a.timer.Status()
		if err != nil {
			return err
		}
		reportTransitions(cmd.OutOrStdout(), st.Transitions, st.CompletedWork, a.cfg.Pomodoro.Quiet, a.taskTitle)
		return watch(cmd, a, st)
	})
}

func runPomodoroHistory(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		intervals, err := a.timer.History(historySize)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderHistory(intervals))
		return nil
	})
}
