package cmd

import (
	"context"

	"github.com/spf13/cobra"

	e "github.com/workshoplabs/labctl/internal/exec"
	"github.com/workshoplabs/labctl/pkg/perf"
)

// setupCmd provisions the student's workshop project.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision the workshop Google Cloud project",
	Long: `Verifies the active gcloud account, finds the trial billing account, creates
the workshop project (or picks up the one recorded locally), links billing,
sets the gcloud default project and records the project in the environment
file.

Running setup again after a success is a no-op: when the recorded project is
already linked to the trial billing account the command confirms the
configuration and exits.`,
	Example: `labctl setup
labctl setup --project-id workshop-eu-0042
labctl setup --non-interactive
labctl setup --dry-run`,

	FParseErrWhitelist: struct{ UnknownFlags bool }{UnknownFlags: false},
	RunE:               executeSetupCommand,
}

func executeSetupCommand(cmd *cobra.Command, args []string) error {
	handleHelpRequest(cmd, args)
	defer perf.Track(nil, "cmd.executeSetupCommand")()

	opts := &e.SetupOptions{}
	opts.ProjectID, _ = cmd.Flags().GetString("project-id")
	opts.NonInteractive, _ = cmd.Flags().GetBool("non-interactive")
	opts.EnvFile, _ = cmd.Flags().GetString("env-file")
	opts.EnvTemplate, _ = cmd.Flags().GetString("env-template")
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")

	return e.ExecuteSetup(context.Background(), &cliConfig, opts)
}

func init() {
	setupCmd.Flags().String("project-id", "", "Project ID to create instead of prompting for one")
	setupCmd.Flags().Bool("non-interactive", false, "Never prompt; use the generated project ID when none is recorded or given")
	setupCmd.Flags().String("env-file", "", "Environment file to record the project in (overrides env.file from the config)")
	setupCmd.Flags().String("env-template", "", "Template seeding the environment file on first write (overrides env.template)")
	setupCmd.Flags().Bool("dry-run", false, "Log the gcloud commands that would mutate state instead of running them")
	RootCmd.AddCommand(setupCmd)
}
