package cmd

import (
	"errors"
	"os"

	"github.com/elewis787/boa"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	errUtils "github.com/workshoplabs/labctl/errors"
	cfg "github.com/workshoplabs/labctl/pkg/config"
	log "github.com/workshoplabs/labctl/pkg/logger"
	"github.com/workshoplabs/labctl/pkg/perf"
	"github.com/workshoplabs/labctl/pkg/schema"
)

var cliConfig schema.Configuration

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "labctl",
	Short: "Workshop environment onboarding for Google Cloud",
	Long: `labctl prepares a student's Google Cloud environment for a workshop: it
verifies the gcloud login, finds the trial billing account, provisions the
workshop project and records it in the local environment file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Determine if the command is a help command or if the help flag is set
		isHelpRequested := cmd.Name() == "help" || cmd.Flags().Changed("help")

		if isHelpRequested {
			// Do not silence usage or errors when help is invoked
			cmd.SilenceUsage = false
			cmd.SilenceErrors = false
		} else {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	styles := boa.DefaultStyles()
	b := boa.New(boa.WithStyles(styles))
	RootCmd.SetUsageFunc(b.UsageFunc)
	RootCmd.SetHelpFunc(func(command *cobra.Command, strings []string) {
		b.HelpFunc(command, strings)
	})

	// The --config flag must be resolved before cobra dispatches the command
	// so the merged configuration is available to every RunE.
	if err := RootCmd.ParseFlags(os.Args[1:]); err != nil && !errors.Is(err, pflag.ErrHelp) {
		// Unknown flags surface again during Execute with cobra's own message.
		log.Debug("Early flag parse", "error", err)
	}

	if noColor, _ := RootCmd.Flags().GetBool("no-color"); noColor {
		// fatih/color decides at init; the charm and lipgloss renderers read
		// the environment when first used.
		color.NoColor = true
		os.Setenv("NO_COLOR", "1")
	}

	// --version prints and returns before configuration is loaded, the same
	// fast path main() takes.
	if versionSet, _ := RootCmd.Flags().GetBool("version"); versionSet {
		return ExecuteVersion()
	}

	configPathOverride, _ := RootCmd.Flags().GetString("config")

	var initErr error
	cliConfig, initErr = cfg.InitCliConfig(configPathOverride)
	if initErr != nil {
		return initErr
	}

	// Command-line flags take precedence over the config file and ENV vars.
	if RootCmd.Flags().Changed("logs-level") {
		cliConfig.Logs.Level, _ = RootCmd.Flags().GetString("logs-level")
	}
	if RootCmd.Flags().Changed("logs-file") {
		cliConfig.Logs.File, _ = RootCmd.Flags().GetString("logs-file")
	}

	if err := log.InitFromConfig(&cliConfig); err != nil {
		return err
	}

	// At debug and below, printed errors carry their recorded context values.
	errUtils.Verbose = log.GetLevel() <= log.DebugLevel

	return RootCmd.Execute()
}

// Cleanup releases resources before the process exits. At trace level it
// also reports the timings collected while the command ran.
func Cleanup() {
	if log.GetLevel() > log.TraceLevel {
		return
	}
	for _, stat := range perf.Summary() {
		log.Trace("perf", "func", stat.Name, "count", stat.Count, "total", stat.Total)
	}
}

func init() {
	RootCmd.PersistentFlags().String("logs-level", "Info", "Logs level. Supported log levels are Trace, Debug, Info, Warning, Off. If the log level is set to Off, labctl will not log any messages")
	RootCmd.PersistentFlags().String("logs-file", "/dev/stderr", "The file to write labctl logs to. Logs can be written to any file or any standard file descriptor, including '/dev/stdout', '/dev/stderr' and '/dev/null'")
	RootCmd.PersistentFlags().String("config", "", "Path to a labctl.yaml configuration file. Overrides the default search locations")
	RootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	RootCmd.PersistentFlags().Bool("version", false, "Show the labctl version (same as labctl version)")
}
