package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/Tiliavir/gh-wizard/internal/priority"
	"github.com/Tiliavir/gh-wizard/internal/timecalc"
)

// RenderSteps lists the steps of a broken-down task with their estimates.
func RenderSteps(title string, steps []priority.Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render("Task Breakdown: "+title))
	for i, s := range steps {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, s.Name)
		fmt.Fprintf(&b, "     %s\n", dimStyle.Render(fmt.Sprintf("~%d min, %s", s.EstimateMinutes, s.Priority)))
		fmt.Fprintf(&b, "     %s\n", s.Description)
	}
	fmt.Fprintf(&b, "\n  Total: %s", timecalc.FormatMinutes(priority.TotalMinutes(steps)))
	return b.String()
}

// RenderProgress shows one bar per broken-down task and the overall share.
func RenderProgress(items []priority.Progress) string {
	if len(items) == 0 {
		return "No broken-down tasks. Create one with: gh wizard priorities breakdown <task> --add <quadrant>"
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	var b strings.Builder
	for _, p := range items {
		mark := warnStyle.Render("…")
		if p.Complete() {
			mark = okStyle.Render("✓")
		}
		fmt.Fprintf(&b, "%s %-32s %s %d/%d steps\n", mark, p.Parent, bar.ViewAs(p.Percent()/100), p.Done, p.Total)
	}
	fmt.Fprintf(&b, "%s %.1f%%", headerStyle.Render("Overall"), priority.OverallPercent(items))
	return b.String()
}
