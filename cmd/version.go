package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/workshoplabs/labctl/pkg/perf"
	u "github.com/workshoplabs/labctl/pkg/utils"
	"github.com/workshoplabs/labctl/pkg/version"
)

var checkFlag bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the CLI version",
	Long:    `This command prints the CLI version`,
	Example: "labctl version",

	FParseErrWhitelist: struct{ UnknownFlags bool }{UnknownFlags: false},
	RunE:               executeVersionCommand,
}

func executeVersionCommand(cmd *cobra.Command, args []string) error {
	handleHelpRequest(cmd, args)
	defer perf.Track(nil, "cmd.executeVersionCommand")()

	u.PrintMessage(fmt.Sprintf("labctl %s on %s/%s", version.Version, runtime.GOOS, runtime.GOARCH))

	if checkFlag {
		// Check for the latest labctl release on GitHub.
		latestReleaseTag, err := u.GetLatestGitHubRepoRelease("workshoplabs", "labctl")
		if err == nil && latestReleaseTag != "" {
			latestRelease := strings.TrimPrefix(latestReleaseTag, "v")
			currentRelease := strings.TrimPrefix(version.Version, "v")
			if latestRelease != currentRelease {
				u.PrintMessageToUpgradeToLatestRelease(latestRelease)
			}
		}
		return nil
	}

	// Check the cache and print the update message when a check is due.
	CheckForUpdateAndPrintMessage(cliConfig)
	return nil
}

// ExecuteVersion prints the version without going through full command
// dispatch. main() routes the --version flag here.
func ExecuteVersion() error {
	return executeVersionCommand(versionCmd, nil)
}

func init() {
	versionCmd.Flags().BoolVarP(&checkFlag, "check", "c", false, "Run additional checks after displaying version info")
	RootCmd.AddCommand(versionCmd)
}
