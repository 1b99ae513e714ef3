package exec

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"github.com/workshoplabs/labctl/pkg/gcloud"
	"github.com/workshoplabs/labctl/pkg/perf"
	"github.com/workshoplabs/labctl/pkg/schema"
	"github.com/workshoplabs/labctl/pkg/terminal"
	"github.com/workshoplabs/labctl/pkg/ui/theme"
	u "github.com/workshoplabs/labctl/pkg/utils"
)

// ExecuteBillingList renders the billing accounts visible to the active
// account and marks the one the setup flow would use.
func ExecuteBillingList(ctx context.Context, cfg *schema.Configuration) error {
	defer perf.Track(nil, "exec.ExecuteBillingList")()

	client := gcloud.NewClient(cfg.Gcloud.Bin)
	return executeBillingList(ctx, cfg, client)
}

func executeBillingList(ctx context.Context, cfg *schema.Configuration, client gcloudClient) error {
	if _, err := client.Resolve(); err != nil {
		return err
	}

	accounts, err := client.ListBillingAccounts(ctx)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		u.PrintMessage("No billing accounts visible to the active account")
		return nil
	}

	u.PrintMessage(formatBillingAccounts(accounts, cfg.Billing.Filter, terminal.IsTTYSupportForStdout()))
	return nil
}

// formatBillingAccounts renders the listing as a styled table, or as
// tab-separated lines when no TTY is attached. The TRIAL column reads "yes"
// for accounts matching the trial filter and "selected" for the one the
// setup flow would link.
func formatBillingAccounts(accounts []gcloud.BillingAccount, filter string, tty bool) string {
	header := []string{"ID", "NAME", "OPEN", "TRIAL"}

	_, selectedIndex, selectedOK := lo.FindLastIndexOf(accounts, func(account gcloud.BillingAccount) bool {
		return account.Open && strings.Contains(account.DisplayName, filter)
	})

	var rows [][]string
	for i, account := range accounts {
		open := "no"
		if account.Open {
			open = "yes"
		}

		trial := ""
		switch {
		case selectedOK && i == selectedIndex:
			trial = "selected"
		case strings.Contains(account.DisplayName, filter):
			trial = "yes"
		}

		rows = append(rows, []string{account.ID, account.DisplayName, open, trial})
	}

	if !tty {
		var output strings.Builder
		output.WriteString(strings.Join(header, "\t") + "\n")
		for _, row := range rows {
			output.WriteString(strings.Join(row, "\t") + "\n")
		}
		return strings.TrimSuffix(output.String(), "\n")
	}

	t := table.New().
		Border(lipgloss.ThickBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorBorder))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			switch {
			case row == table.HeaderRow:
				return style.Inherit(theme.Styles.CommandName).Align(lipgloss.Center)
			case row%2 == 1:
				return style.Inherit(theme.Styles.GrayText)
			default:
				return style.Inherit(theme.Styles.Description)
			}
		}).
		Headers(header...).
		Rows(rows...)

	return t.String()
}
