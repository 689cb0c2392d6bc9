package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/gh-wizard/internal/apperr"
	"github.com/Tiliavir/gh-wizard/internal/model"
	"github.com/Tiliavir/gh-wizard/internal/priority"
	"github.com/Tiliavir/gh-wizard/internal/ui"
)

var (
	addDescription string
	addEstimate    int
	addSession     string
	addNoSession   bool

	matrixAll    bool
	listQuadrant string
	listAll      bool
	listFormat   string

	breakdownAdd string
)

var prioritiesCmd = &cobra.Command{
	Use:     "priorities",
	Aliases: []string{"p", "prio"},
	Short:   "Sort work into an Eisenhower matrix",
}

var prioritiesAddCmd = &cobra.Command{
	Use:   "add <title> <quadrant>",
	Short: "Add a task to a quadrant",
	Long: `Add a task to one of the four quadrants:

  urgent-important          (q1)  DO FIRST
  not-urgent-important      (q2)  SCHEDULE
  urgent-not-important      (q3)  DELEGATE
  not-urgent-not-important  (q4)  ELIMINATE

The task is linked to the active session unless --session or --no-session is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runPrioritiesAdd,
}

var prioritiesMatrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Show the 2x2 matrix",
	Args:  cobra.NoArgs,
	RunE:  runPrioritiesMatrix,
}

var prioritiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks ordered by priority",
	Args:  cobra.NoArgs,
	RunE:  runPrioritiesList,
}

var prioritiesDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrioritiesDone,
}

var prioritiesBreakdownCmd = &cobra.Command{
	Use:     "breakdown <task>",
	Aliases: []string{"break"},
	Short:   "Break a larger task into steps with estimates",
	Long: `Break a larger task into steps. Titles mentioning a release, feature,
bugfix or refactor get a matching workflow; anything else gets a generic
plan. With --add the steps become tasks in the given quadrant and show up
in "priorities progress".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrioritiesBreakdown,
}

var prioritiesProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show step progress of broken-down tasks",
	Args:  cobra.NoArgs,
	RunE:  runPrioritiesProgress,
}

func init() {
	prioritiesAddCmd.Flags().StringVarP(&addDescription, "desc", "d", "", "Longer description")
	prioritiesAddCmd.Flags().IntVarP(&addEstimate, "estimate", "e", 0, "Estimated minutes")
	prioritiesAddCmd.Flags().StringVar(&addSession, "session", "", "Link to this session id instead of the active one")
	prioritiesAddCmd.Flags().BoolVar(&addNoSession, "no-session", false, "Do not link the task to a session")

	prioritiesMatrixCmd.Flags().BoolVarP(&matrixAll, "all", "a", false, "Include done tasks")

	prioritiesListCmd.Flags().StringVarP(&listQuadrant, "quadrant", "q", "", "Only this quadrant")
	prioritiesListCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include done tasks")
	prioritiesListCmd.Flags().StringVar(&listFormat, "format", "md", "Output format: md, csv, json")

	prioritiesBreakdownCmd.Flags().StringVar(&breakdownAdd, "add", "", "Add the steps as tasks to this quadrant")

	prioritiesCmd.AddCommand(prioritiesAddCmd, prioritiesMatrixCmd, prioritiesListCmd, prioritiesDoneCmd,
		prioritiesBreakdownCmd, prioritiesProgressCmd)
}

func runPrioritiesAdd(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		t, err := a.matrix.Add(priority.NewTask{
			Title:           args[0],
			Quadrant:        args[1],
			Description:     addDescription,
			EstimateMinutes: addEstimate,
			SessionID:       addSession,
			NoSession:       addNoSession,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Added %q to %s (%s) as %s", t.Title, t.Quadrant, t.Quadrant.Action(), t.ID)))
		return nil
	})
}

func runPrioritiesMatrix(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		groups, err := a.matrix.Grouped(priority.Filter{IncludeDone: matrixAll})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderMatrix(groups, 40))
		return nil
	})
}

func runPrioritiesList(cmd *cobra.Command, args []string) error {
	f := priority.Filter{IncludeDone: listAll}
	if listQuadrant != "" {
		q, err := model.ParseQuadrant(listQuadrant)
		if err != nil {
			return apperr.Validation("%v", err)
		}
		f.Quadrant = q
	}
	return withApp(func(a *app) error {
		tasks, err := a.matrix.List(f)
		if err != nil {
			return err
		}
		return writeTasks(cmd.OutOrStdout(), tasks, listFormat)
	})
}

func writeTasks(w io.Writer, tasks []model.Task, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "csv":
		fmt.Fprintln(w, "id,title,quadrant,priority,status,estimate_minutes,session_id,created_at")
		for _, t := range tasks {
			session := ""
			if t.SessionID != nil {
				session = *t.SessionID
			}
			fmt.Fprintln(w, strings.Join([]string{
				csvEscape(t.ID),
				csvEscape(t.Title),
				string(t.Quadrant),
				t.Quadrant.Priority(),
				string(t.Status),
				strconv.Itoa(t.EstimateMinutes),
				csvEscape(session),
				t.CreatedAt.Format(time.RFC3339),
			}, ","))
		}
	case "md":
		fmt.Fprintln(w, ui.RenderTaskList(tasks))
	default:
		return apperr.Validation("unknown format %q (want md, csv or json)", format)
	}
	return nil
}

func runPrioritiesDone(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		t, changed, err := a.matrix.Complete(args[0])
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintf(cmd.OutOrStdout(), "Task %q was already done.\n", t.Title)
			return nil
		}
		if err := a.stats.RecordTaskCompletion(*t.CompletedAt); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Completed %q", t.Title)))
		return nil
	})
}

func runPrioritiesBreakdown(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	out := cmd.OutOrStdout()
	if breakdownAdd == "" {
		_, steps := priority.Breakdown(title)
		fmt.Fprintln(out, ui.RenderSteps(title, steps))
		return nil
	}
	return withApp(func(a *app) error {
		tasks, err := a.matrix.AddBreakdown(title, breakdownAdd)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Added %d steps of %q:", len(tasks), title)))
		fmt.Fprintln(out, ui.RenderTaskList(tasks))
		return nil
	})
}

func runPrioritiesProgress(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		items, err := a.matrix.Progress()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderProgress(items))
		return nil
	})
}
