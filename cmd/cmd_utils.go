package cmd

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	errUtils "github.com/workshoplabs/labctl/errors"
	cfg "github.com/workshoplabs/labctl/pkg/config"
	log "github.com/workshoplabs/labctl/pkg/logger"
	"github.com/workshoplabs/labctl/pkg/schema"
	u "github.com/workshoplabs/labctl/pkg/utils"
	"github.com/workshoplabs/labctl/pkg/version"
)

// handleHelpRequest shows the command help and exits when help was requested
// through an argument instead of cobra's own flag handling.
func handleHelpRequest(cmd *cobra.Command, args []string) {
	if (len(args) > 0 && args[0] == "help") || lo.Contains(args, "--help") || lo.Contains(args, "-h") {
		_ = cmd.Help()
		errUtils.OsExit(0)
	}
}

// CheckForUpdateAndPrintMessage prints an upgrade notice when a newer labctl
// release exists on GitHub. The check is controlled by the version.check
// configuration and throttled through the run cache so repeated invocations
// stay quiet between intervals.
func CheckForUpdateAndPrintMessage(cliConfig schema.Configuration) {
	if !cliConfig.Version.Check.Enabled {
		return
	}

	cacheCfg, err := cfg.LoadCache()
	if err != nil {
		log.Warn("Could not load cache", "error", err)
		return
	}

	if !cfg.ShouldCheckForUpdates(cacheCfg.LastChecked, cliConfig.Version.Check.Frequency) {
		// Not due for another check yet.
		return
	}

	latestReleaseTag, err := u.GetLatestGitHubRepoRelease("workshoplabs", "labctl")
	if err != nil {
		log.Warn("Failed to retrieve latest release info", "error", err)
		return
	}
	if latestReleaseTag == "" {
		log.Warn("No release information available")
		return
	}

	latestRelease := strings.TrimPrefix(latestReleaseTag, "v")
	currentRelease := strings.TrimPrefix(version.Version, "v")
	if latestRelease != currentRelease {
		u.PrintMessageToUpgradeToLatestRelease(latestRelease)
	}

	// Record the check even when already up to date.
	if err := cfg.UpdateCache(func(c *cfg.CacheConfig) {
		c.LastChecked = time.Now().Unix()
	}); err != nil {
		log.Warn("Unable to save cache", "error", err)
	}
}
