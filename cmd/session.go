package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/gh-wizard/internal/ui"
)

var sessionNote string

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Bookmark and resume hyperfocus sessions",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a new session",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSessionStart,
}

var sessionPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the active session",
	Args:  cobra.NoArgs,
	RunE:  runSessionPause,
}

var sessionResumeCmd = &cobra.Command{
	Use:   "resume [id]",
	Short: "Resume a session (the most recently paused one by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionResume,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, most recently active first",
	Args:  cobra.NoArgs,
	RunE:  runSessionList,
}

var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active session",
	Args:  cobra.NoArgs,
	RunE:  runSessionStatus,
}

var sessionDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Archive a session (the active one by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionDone,
}

var sessionNoteCmd = &cobra.Command{
	Use:   "note <text>",
	Short: "Replace the context note of the active session",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSessionNote,
}

var sessionCrumbCmd = &cobra.Command{
	Use:   "crumb <message>",
	Short: "Leave a breadcrumb in the active session",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSessionCrumb,
}

var sessionContextCmd = &cobra.Command{
	Use:   "context <key> <value>",
	Short: "Attach a key/value pair such as repo or branch to the active session",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionContext,
}

func init() {
	sessionStartCmd.Flags().StringVarP(&sessionNote, "note", "n", "", "Context note to come back to")

	sessionCmd.AddCommand(sessionStartCmd, sessionPauseCmd, sessionResumeCmd, sessionListCmd,
		sessionStatusCmd, sessionDoneCmd, sessionNoteCmd, sessionCrumbCmd, sessionContextCmd)
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func runSessionStart(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		s, err := a.sessions.Start(strings.Join(args, " "), sessionNote)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Started session %q (%s)", s.Name, s.ID)))
		return nil
	})
}

func runSessionPause(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		s, err := a.sessions.Pause()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Paused session %q. Resume with: gh wizard session resume %s\n", s.Name, s.ID)
		return nil
	})
}

func runSessionResume(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		s, err := a.sessions.Resume(optionalArg(args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Resumed session %q", s.Name)))
		fmt.Fprintln(out, ui.RenderSession(s))
		return nil
	})
}

func runSessionList(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		sessions, err := a.sessions.List()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSessions(sessions))
		return nil
	})
}

func runSessionStatus(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		s, err := a.sessions.Current()
		if err != nil {
			return err
		}
		if s == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No active session.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSession(*s))
		return nil
	})
}

func runSessionDone(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		s, err := a.sessions.Complete(optionalArg(args))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Completed session %q", s.Name)))
		return nil
	})
}

func runSessionNote(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		s, err := a.sessions.SetNote(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated note on %q\n", s.Name)
		return nil
	})
}

func runSessionCrumb(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		s, err := a.sessions.AddBreadcrumb(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Breadcrumb %d added to %q\n", len(s.Breadcrumbs), s.Name)
		return nil
	})
}

func runSessionContext(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		s, err := a.sessions.SetContext(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s on %q\n", args[0], args[1], s.Name)
		return nil
	})
}
