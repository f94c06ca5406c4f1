// Package tui provides the Bubble Tea playback view for the flipbook
// CLI. The play command is its only entrypoint: loading progress first,
// then the half-block frame view with playback key bindings.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	successColor = lipgloss.Color("#10B981") // Green
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#EF4444") // Red
	mutedColor   = lipgloss.Color("#6B7280") // Gray
)

// Styles for TUI components.
var (
	// TitleStyle for the sequence name header.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// HelpStyle for key binding hints.
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// ErrorStyle for load failures.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// FooterStyle for the playback status line.
	FooterStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// PlayingStyle marks an advancing sequence.
	PlayingStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// StoppedStyle marks a halted sequence.
	StoppedStyle = lipgloss.NewStyle().
			Foreground(warningColor)
)
