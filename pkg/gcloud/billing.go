package gcloud

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	errUtils "github.com/workshoplabs/labctl/errors"
	log "github.com/workshoplabs/labctl/pkg/logger"
	"github.com/workshoplabs/labctl/pkg/perf"
)

const (
	billingListFormat = "csv[no-heading](name.basename(),displayName,open)"
	billingInfoFormat = "csv[no-heading](billingAccountName)"

	billingListFields = 3

	// billingAccountPrefix is the resource-name prefix gcloud reports for a
	// linked billing account, e.g. "billingAccounts/0155E5-B5AB42-079F61".
	billingAccountPrefix = "billingAccounts/"
)

// BillingAccount is one row of the gcloud billing accounts listing.
type BillingAccount struct {
	// ID is the account identifier, e.g. "0155E5-B5AB42-079F61".
	ID string
	// DisplayName is the human-readable name, e.g. "My Billing Account".
	DisplayName string
	// Open reports whether the account can still be charged against.
	Open bool
}

// ListBillingAccounts returns every billing account visible to the active
// account, in the order gcloud lists them.
func (c *Client) ListBillingAccounts(ctx context.Context) ([]BillingAccount, error) {
	defer perf.Track(nil, "gcloud.Client.ListBillingAccounts")()

	cmd := executor.CommandContext(ctx, c.bin, "billing", "accounts", "list", "--format="+billingListFormat)
	output, err := runOutput(cmd, "billing accounts list")
	if err != nil {
		return nil, err
	}

	records, err := parseCSV(output)
	if err != nil {
		return nil, err
	}

	accounts := make([]BillingAccount, 0, len(records))
	for _, record := range records {
		if len(record) != billingListFields {
			return nil, fmt.Errorf("%w: billing account record %q has %d fields, want %d",
				errUtils.ErrParseOutput, strings.Join(record, ","), len(record), billingListFields)
		}

		open, err := strconv.ParseBool(record[2])
		if err != nil {
			return nil, fmt.Errorf("%w: billing account %q has open status %q",
				errUtils.ErrParseOutput, record[0], record[2])
		}

		accounts = append(accounts, BillingAccount{
			ID:          record[0],
			DisplayName: record[1],
			Open:        open,
		})
	}

	log.Debug("Listed billing accounts", "count", len(accounts))
	return accounts, nil
}

// ProjectBillingAccount returns the ID of the billing account linked to the
// project, or the empty string when the project has no billing linked.
func (c *Client) ProjectBillingAccount(ctx context.Context, projectID string) (string, error) {
	defer perf.Track(nil, "gcloud.Client.ProjectBillingAccount")()

	cmd := executor.CommandContext(ctx, c.bin, "billing", "projects", "describe", projectID, "--format="+billingInfoFormat)
	output, err := runOutput(cmd, "billing projects describe")
	if err != nil {
		return "", err
	}

	records, err := parseCSV(output)
	if err != nil {
		return "", err
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return "", nil
	}

	account := strings.TrimPrefix(strings.TrimSpace(records[0][0]), billingAccountPrefix)
	log.Debug("Project billing info", "project", projectID, "billing_account", account)
	return account, nil
}

// LinkProjectBilling links the billing account to the project.
func (c *Client) LinkProjectBilling(ctx context.Context, projectID string, accountID string) error {
	defer perf.Track(nil, "gcloud.Client.LinkProjectBilling")()

	args := []string{"billing", "projects", "link", projectID, "--billing-account=" + accountID}
	if c.DryRun {
		log.Info("Dry run: would link billing account", "command", c.bin+" "+strings.Join(args, " "))
		return nil
	}

	cmd := executor.CommandContext(ctx, c.bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errUtils.Build(errUtils.ErrBillingLink).
			WithCause(fmt.Errorf("gcloud billing projects link failed: %v: %s", err, bytes.TrimSpace(output))).
			WithContext("project_id", projectID).
			WithContext("billing_account", accountID).
			WithHint("Check that the billing account is open and that you may link projects to it.").
			Err()
	}

	log.Debug("Linked billing account", "project", projectID, "billing_account", accountID)
	return nil
}
