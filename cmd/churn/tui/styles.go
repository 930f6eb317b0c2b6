package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marshallshelly/pebble-churn/pkg/workload"
)

var (
	// Color palette
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#4B5563")

	// Title styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Status styles
	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Box styles
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	// Help styles
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Action styles
	insertStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	updateStyle = lipgloss.NewStyle().Foreground(colorInfo)
	deleteStyle = lipgloss.NewStyle().Foreground(colorDanger)
)

// FormatResult returns a styled report line. No-ops are rendered muted.
func FormatResult(res workload.Result) string {
	if res.NoOp() {
		return mutedStyle.Render(res.String())
	}
	switch res.Op.Action {
	case workload.ActionInsert:
		return insertStyle.Render(res.String())
	case workload.ActionUpdate:
		return updateStyle.Render(res.String())
	default:
		return deleteStyle.Render(res.String())
	}
}

// FormatKey formats a help key
func FormatKey(key, description string) string {
	return helpKeyStyle.Render(key) + " " + mutedStyle.Render(description)
}
