package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/gh-wizard/internal/apperr"
	"github.com/Tiliavir/gh-wizard/internal/ui"
)

var (
	dataDirFlag string
	configFlag  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "gh-wizard",
	Short: "Focus tools for developers: sessions, priorities and pomodoros",
	Long: `gh-wizard bookmarks hyperfocus sessions, keeps an Eisenhower priority
matrix, runs a pomodoro focus timer and tracks daily stats.
All data is stored as human-readable files in ~/.ghwizard/.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Failure("Error: "+err.Error()))
		os.Exit(apperr.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Override the data directory")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default ~/.ghwizard/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(prioritiesCmd)
	rootCmd.AddCommand(pomodoroCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(configCmd)
}
