package cmd

import (
	"github.com/spf13/cobra"
)

// billingCmd groups the billing account subcommands.
var billingCmd = &cobra.Command{
	Use:                "billing",
	Short:              "Inspect the billing accounts visible to the active account",
	Long:               `Subcommands for inspecting the billing accounts the active gcloud account can see.`,
	FParseErrWhitelist: struct{ UnknownFlags bool }{UnknownFlags: false},
}

func init() {
	RootCmd.AddCommand(billingCmd)
}
