// Package ui renders wizard data for the terminal.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/gh-wizard/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var quadrantColors = map[model.Quadrant]lipgloss.Color{
	model.UrgentImportant:       lipgloss.Color("9"),
	model.NotUrgentImportant:    lipgloss.Color("12"),
	model.UrgentNotImportant:    lipgloss.Color("11"),
	model.NotUrgentNotImportant: lipgloss.Color("10"),
}

// Success renders a confirmation line.
func Success(s string) string { return okStyle.Render(s) }

// Warning renders a notice that needs attention.
func Warning(s string) string { return warnStyle.Render(s) }

// Failure renders an error line.
func Failure(s string) string { return errorStyle.Render(s) }

// Dim renders secondary details.
func Dim(s string) string { return dimStyle.Render(s) }

// Header renders a section title.
func Header(s string) string { return headerStyle.Render(s) }
