package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/gh-wizard/internal/model"
	"github.com/Tiliavir/gh-wizard/internal/priority"
	"github.com/Tiliavir/gh-wizard/internal/timecalc"
	"github.com/Tiliavir/gh-wizard/internal/timer"
	"github.com/Tiliavir/gh-wizard/internal/ui"
)

var dashboardPlain bool

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Summarise the session, timer, priorities and today's stats",
	Args:    cobra.NoArgs,
	RunE:    runDashboard,
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardPlain, "plain", false, "Print the raw markdown")
}

// dashboardData is everything the dashboard shows.
type dashboardData struct {
	Now     time.Time
	Session *model.Session
	Timer   timer.Status
	Tasks   []model.Task
	Today   model.DailyStat
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		var d dashboardData
		var err error
		d.Now = time.Now()
		if d.Timer, err = a.timer.Status(); err != nil {
			return err
		}
		if d.Session, err = a.sessions.Current(); err != nil {
			return err
		}
		if d.Tasks, err = a.matrix.List(priority.Filter{}); err != nil {
			return err
		}
		if d.Today, err = a.stats.Report(d.Now); err != nil {
			return err
		}

		md := dashboardMarkdown(d)
		if dashboardPlain {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderMarkdown(md))
		return nil
	})
}

func dashboardMarkdown(d dashboardData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dashboard %s\n\n", d.Now.Format("Mon 2006-01-02 15:04"))

	b.WriteString("## Session\n\n")
	if d.Session == nil {
		b.WriteString("No active session.\n\n")
	} else {
		fmt.Fprintf(&b, "**%s** (`%s`), active for %s\n\n", d.Session.Name, d.Session.ID,
			timecalc.FormatMinutes(int(d.Now.Sub(d.Session.CreatedAt).Minutes())))
		if d.Session.Note != "" {
			fmt.Fprintf(&b, "> %s\n\n", d.Session.Note)
		}
		if n := len(d.Session.Breadcrumbs); n > 0 {
			last := d.Session.Breadcrumbs[n-1]
			fmt.Fprintf(&b, "Last breadcrumb at %s: %s\n\n", clockOrDate(last.At, d.Now), last.Message)
		}
	}

	b.WriteString("## Focus timer\n\n")
	if cur := d.Timer.Current; cur == nil {
		fmt.Fprintf(&b, "Idle. %d pomodoros since the last long break.\n\n", d.Timer.CompletedWork)
	} else {
		fmt.Fprintf(&b, "%s is %s, %s left (ends %s).\n\n", cur.Kind, d.Timer.State,
			timecalc.FormatClock(d.Timer.Remaining), cur.DueAt().Format("15:04"))
	}

	b.WriteString("## Priorities\n\n")
	if len(d.Tasks) == 0 {
		b.WriteString("Nothing open.\n\n")
	}
	for i, t := range d.Tasks {
		if i == 5 {
			fmt.Fprintf(&b, "- ... and %d more\n", len(d.Tasks)-5)
			break
		}
		fmt.Fprintf(&b, "- **%s** %s `%s`\n", t.Quadrant.Action(), t.Title, t.ID)
	}
	if len(d.Tasks) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("## Today\n\n")
	b.WriteString("| Focus | Pomodoros | Tasks done | Breaks |\n")
	b.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", timecalc.FormatMinutes(d.Today.FocusMinutes),
		d.Today.CompletedIntervals, d.Today.CompletedTasks, d.Today.BreaksTaken)
	return b.String()
}

// clockOrDate shows t as a time of day when it falls on the same day as now.
func clockOrDate(t, now time.Time) string {
	if timecalc.SameDay(t, now) {
		return t.Format("15:04")
	}
	return t.Format("Jan 2 15:04")
}
