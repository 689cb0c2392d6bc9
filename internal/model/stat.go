package model

// DailyStat aggregates focus time and completions for one calendar day.
type DailyStat struct {
	Date                string `json:"date" yaml:"date"`
	FocusMinutes        int    `json:"focus_minutes" yaml:"focus_minutes"`
	CompletedTasks      int    `json:"completed_tasks" yaml:"completed_tasks"`
	CompletedIntervals  int    `json:"completed_intervals" yaml:"completed_intervals"`
	BreaksTaken         int    `json:"breaks_taken" yaml:"breaks_taken"`
	LongestFocusMinutes int    `json:"longest_focus_minutes" yaml:"longest_focus_minutes"`
}
