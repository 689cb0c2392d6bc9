package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/gh-wizard/internal/apperr"
	"github.com/Tiliavir/gh-wizard/internal/model"
	"github.com/Tiliavir/gh-wizard/internal/stats"
	"github.com/Tiliavir/gh-wizard/internal/timecalc"
)

var (
	statsDate   string
	statsWeek   bool
	statsFormat string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus statistics for a day or week",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsDate, "date", "", "Day to report (YYYY-MM-DD, default today)")
	statsCmd.Flags().BoolVar(&statsWeek, "week", false, "Report the ISO week containing the day")
	statsCmd.Flags().StringVar(&statsFormat, "format", "md", "Output format: md, csv, json, yaml")
}

// statsReport is the shape written by the json and yaml formats.
type statsReport struct {
	Period string            `json:"period" yaml:"period"`
	Days   []model.DailyStat `json:"days" yaml:"days"`
	Total  model.DailyStat   `json:"total" yaml:"total"`
}

func runStats(cmd *cobra.Command, args []string) error {
	day := time.Now()
	if statsDate != "" {
		d, err := timecalc.ParseDay(statsDate, time.Local)
		if err != nil {
			return apperr.Validation("%v", err)
		}
		day = d
	}

	return withApp(func(a *app) error {
		// Catch the timer up so intervals that elapsed since the last command count.
		if _, err := a.timer.Status(); err != nil {
			return err
		}

		report := statsReport{Period: timecalc.DayKey(day)}
		if statsWeek {
			from, to := timecalc.WeekRange(day)
			days, err := a.stats.Range(from, to)
			if err != nil {
				return err
			}
			report.Period = timecalc.ISOWeekLabel(day)
			report.Days = days
		} else {
			rec, err := a.stats.Report(day)
			if err != nil {
				return err
			}
			report.Days = []model.DailyStat{rec}
		}
		report.Total = stats.Sum(report.Days)
		return writeStats(cmd.OutOrStdout(), report, statsFormat)
	})
}

func writeStats(w io.Writer, r statsReport, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case "csv":
		fmt.Fprintln(w, "date,focus_minutes,completed_intervals,completed_tasks,breaks_taken,longest_focus_minutes")
		for _, d := range r.Days {
			fmt.Fprintf(w, "%s,%d,%d,%d,%d,%d\n", csvEscape(d.Date),
				d.FocusMinutes, d.CompletedIntervals, d.CompletedTasks, d.BreaksTaken, d.LongestFocusMinutes)
		}
	case "md":
		fmt.Fprint(w, statsMarkdown(r))
	default:
		return apperr.Validation("unknown format %q (want md, csv, json or yaml)", format)
	}
	return nil
}

func statsMarkdown(r statsReport) string {
	out := fmt.Sprintf("Stats %s\n", r.Period)
	out += "--------------------------------\n"
	if len(r.Days) > 1 {
		for _, d := range r.Days {
			out += fmt.Sprintf("%-12s%8s %3d pomodoros %3d tasks\n",
				d.Date, timecalc.FormatMinutes(d.FocusMinutes), d.CompletedIntervals, d.CompletedTasks)
		}
		out += "--------------------------------\n"
	}
	t := r.Total
	rows := [][2]string{
		{"Focus time", timecalc.FormatMinutes(t.FocusMinutes)},
		{"Pomodoros", strconv.Itoa(t.CompletedIntervals)},
		{"Tasks done", strconv.Itoa(t.CompletedTasks)},
		{"Breaks taken", strconv.Itoa(t.BreaksTaken)},
		{"Longest focus", timecalc.FormatMinutes(t.LongestFocusMinutes)},
	}
	for _, row := range rows {
		out += fmt.Sprintf("%-20s%s\n", row[0], row[1])
	}
	return out
}
