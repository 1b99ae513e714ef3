package utils

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/workshoplabs/labctl/pkg/ui/theme"
	"github.com/workshoplabs/labctl/pkg/version"
)

// PrintMessageToUpgradeToLatestRelease prints info on how to upgrade labctl
// to the latest version.
func PrintMessageToUpgradeToLatestRelease(latestVersion string) {
	c1 := theme.Colors.Info
	c2 := theme.Colors.Success
	c3 := theme.Colors.Warning

	message := fmt.Sprintf("Update available! %s » %s",
		c1.Sprintf("%s", version.Version),
		c2.Sprintf("%s", latestVersion))

	links := []string{
		fmt.Sprintf("Releases: %s", c3.Sprintf("https://github.com/workshoplabs/labctl/releases")),
	}

	messageLines := append([]string{message}, links...)
	messageContent := strings.Join(messageLines, "\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ColorGreen)).
		Padding(0, 1).
		Align(lipgloss.Center).
		Render(messageContent)

	fmt.Println(box)
}
