// Package theme centralizes the colors and lipgloss styles used by labctl's
// terminal output so tables, prompts and status lines stay consistent.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Hex colors shared by the lipgloss styles below.
const (
	ColorBorder   = "#5F5FD7"
	ColorSelected = "#10ff10"
	ColorGray     = "#626262"
	ColorGreen    = "#00D787"
	ColorRed      = "#FF5F87"
	ColorCyan     = "#00FFFF"
)

// Colors are the fatih/color instances for plain colored text output written
// through utils.PrintMessageInColor.
var Colors = struct {
	Default *color.Color
	Info    *color.Color
	Success *color.Color
	Warning *color.Color
	Error   *color.Color
}{
	Default: color.New(color.Reset),
	Info:    color.New(color.FgCyan),
	Success: color.New(color.FgGreen),
	Warning: color.New(color.FgYellow),
	Error:   color.New(color.FgRed),
}

// Styles are the lipgloss styles for structured output such as tables.
var Styles = struct {
	Title       lipgloss.Style
	CommandName lipgloss.Style
	Description lipgloss.Style
	GrayText    lipgloss.Style
	Selected    lipgloss.Style
	Checkmark   lipgloss.Style
	XMark       lipgloss.Style
}{
	Title:       lipgloss.NewStyle().Bold(true),
	CommandName: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan)),
	Description: lipgloss.NewStyle(),
	GrayText:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
	Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSelected)).Bold(true),
	Checkmark:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)).SetString("✓"),
	XMark:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)).SetString("✗"),
}
