package ui

import tea "github.com/charmbracelet/bubbletea"

// TickForTest exposes the countdown tick message to black-box tests.
func TickForTest() tea.Msg { return countdownTickMsg{} }
