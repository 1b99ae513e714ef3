package cmd

import (
	"context"

	"github.com/spf13/cobra"

	e "github.com/workshoplabs/labctl/internal/exec"
	"github.com/workshoplabs/labctl/pkg/perf"
)

// billingListCmd renders the billing account listing.
var billingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List billing accounts and mark the trial selection",
	Long: `Lists the billing accounts visible to the active gcloud account and marks
the one setup would select as the trial account.`,
	Example: "labctl billing list",

	FParseErrWhitelist: struct{ UnknownFlags bool }{UnknownFlags: false},
	RunE:               executeBillingListCommand,
}

func executeBillingListCommand(cmd *cobra.Command, args []string) error {
	handleHelpRequest(cmd, args)
	defer perf.Track(nil, "cmd.executeBillingListCommand")()

	return e.ExecuteBillingList(context.Background(), &cliConfig)
}

func init() {
	billingCmd.AddCommand(billingListCmd)
}
