package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/gh-wizard/internal/model"
)

var quadrantTitles = map[model.Quadrant]string{
	model.UrgentImportant:       "Urgent & Important",
	model.NotUrgentImportant:    "Not Urgent & Important",
	model.UrgentNotImportant:    "Urgent & Not Important",
	model.NotUrgentNotImportant: "Not Urgent & Not Important",
}

// TaskLine renders one task as a checklist line.
func TaskLine(t model.Task) string {
	box := "[ ]"
	if t.Done() {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s %s", box, t.Title, dimStyle.Render(t.ID))
	if t.EstimateMinutes > 0 {
		line += dimStyle.Render(fmt.Sprintf(" ~%dm", t.EstimateMinutes))
	}
	return line
}

func quadrantPanel(q model.Quadrant, tasks []model.Task, width int) string {
	color := quadrantColors[q]
	title := lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(fmt.Sprintf("%s (%s)", q.Action(), quadrantTitles[q]))

	lines := []string{title, ""}
	if len(tasks) == 0 {
		lines = append(lines, dimStyle.Render("No tasks"))
	}
	for _, t := range tasks {
		lines = append(lines, TaskLine(t))
	}
	return panelStyle.BorderForeground(color).Width(width).Render(strings.Join(lines, "\n"))
}

// RenderMatrix draws the four quadrants as a 2x2 grid, important tasks on
// top and urgent tasks on the left. Each panel is width cells wide.
func RenderMatrix(groups map[model.Quadrant][]model.Task, width int) string {
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		quadrantPanel(model.UrgentImportant, groups[model.UrgentImportant], width),
		quadrantPanel(model.NotUrgentImportant, groups[model.NotUrgentImportant], width),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		quadrantPanel(model.UrgentNotImportant, groups[model.UrgentNotImportant], width),
		quadrantPanel(model.NotUrgentNotImportant, groups[model.NotUrgentNotImportant], width),
	)
	return lipgloss.JoinVertical(lipgloss.Left, headerStyle.Render("Eisenhower Matrix"), top, bottom)
}

// RenderTaskList renders tasks as a flat priority-ordered list.
func RenderTaskList(tasks []model.Task) string {
	if len(tasks) == 0 {
		return "No tasks found."
	}
	var b strings.Builder
	for _, t := range tasks {
		prio := lipgloss.NewStyle().Foreground(quadrantColors[t.Quadrant]).Width(9).Render(t.Quadrant.Priority())
		fmt.Fprintf(&b, "%s %s  %s\n", prio, TaskLine(t), dimStyle.Render(string(t.Quadrant)))
	}
	return strings.TrimRight(b.String(), "\n")
}
