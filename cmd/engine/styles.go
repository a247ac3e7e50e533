package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for secondary text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// SuccessStyle for completed actions.
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

	// WarningStyle for blocked cycles.
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// FormatScore marks a score with an arrow for its direction.
func FormatScore(score int, bullish bool) string {
	if bullish {
		return fmt.Sprintf("%d ▲", score)
	}

	return fmt.Sprintf("%d ▼", score)
}
