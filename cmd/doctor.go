package cmd

import (
	"context"

	"github.com/spf13/cobra"

	e "github.com/workshoplabs/labctl/internal/exec"
	log "github.com/workshoplabs/labctl/pkg/logger"
	"github.com/workshoplabs/labctl/pkg/perf"
)

// doctorCmd diagnoses the workshop environment without changing it.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the workshop environment",
	Long: `Runs the setup preflight checks without changing anything: gcloud presence
and version, active account, trial billing account, the environment file
record, project existence and billing linkage. Exits non-zero when any
check fails.`,
	Example: `labctl doctor
labctl doctor --format json`,

	FParseErrWhitelist: struct{ UnknownFlags bool }{UnknownFlags: false},
	RunE:               executeDoctorCommand,
}

func executeDoctorCommand(cmd *cobra.Command, args []string) error {
	handleHelpRequest(cmd, args)
	defer perf.Track(nil, "cmd.executeDoctorCommand")()

	opts := &e.DoctorOptions{}
	opts.Format, _ = cmd.Flags().GetString("format")

	return e.ExecuteDoctor(context.Background(), &cliConfig, opts)
}

func init() {
	doctorCmd.Flags().StringP("format", "f", "table", "Output format: table, json or yaml")
	if err := doctorCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{e.FormatTable, e.FormatJSON, e.FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	}); err != nil {
		log.Trace("Failed to register format flag completion", "error", err)
	}
	RootCmd.AddCommand(doctorCmd)
}
