package errUtils

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
)

var (
	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9")).
				Bold(true)

	errorHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	errorDetailStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("8"))
)

// Format renders err for the terminal: the message in the error style,
// followed by any hints attached by the builder. When verbose is true the
// context details recorded with WithContext are appended one per line.
func Format(err error, verbose bool) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(errorMessageStyle.Render(err.Error()))

	for _, hint := range errors.GetAllHints(err) {
		sb.WriteString("\n")
		sb.WriteString(errorHintStyle.Render("hint: " + hint))
	}

	if verbose {
		for _, detail := range errors.GetAllDetails(err) {
			sb.WriteString("\n")
			sb.WriteString(errorDetailStyle.Render(detail))
		}
	}

	return sb.String()
}
