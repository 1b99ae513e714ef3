package exec

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"

	errUtils "github.com/workshoplabs/labctl/errors"
	"github.com/workshoplabs/labctl/pkg/envfile"
	"github.com/workshoplabs/labctl/pkg/gcloud"
	"github.com/workshoplabs/labctl/pkg/perf"
	"github.com/workshoplabs/labctl/pkg/schema"
	"github.com/workshoplabs/labctl/pkg/terminal"
	"github.com/workshoplabs/labctl/pkg/ui/theme"
	u "github.com/workshoplabs/labctl/pkg/utils"
)

// Doctor output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Check statuses.
const (
	statusOK      = "ok"
	statusFailed  = "failed"
	statusSkipped = "skipped"
)

// DoctorOptions are the flag-driven knobs of `labctl doctor`.
type DoctorOptions struct {
	// Format is the output format: table, json or yaml.
	Format string
}

// doctorCheck is one line of the doctor report.
type doctorCheck struct {
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// doctorReport is the full diagnosis.
type doctorReport struct {
	Healthy bool          `json:"healthy" yaml:"healthy"`
	Checks  []doctorCheck `json:"checks" yaml:"checks"`
}

// ExecuteDoctor diagnoses the workshop environment without changing it:
// gcloud presence and version, active account, trial billing, the env file
// record, project existence and billing linkage.
func ExecuteDoctor(ctx context.Context, cfg *schema.Configuration, opts *DoctorOptions) error {
	defer perf.Track(nil, "exec.ExecuteDoctor")()

	client := gcloud.NewClient(cfg.Gcloud.Bin)
	return executeDoctor(ctx, cfg, opts, client)
}

func executeDoctor(ctx context.Context, cfg *schema.Configuration, opts *DoctorOptions, client gcloudClient) error {
	format := opts.Format
	if format == "" {
		format = FormatTable
	}
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return errUtils.Build(errUtils.ErrInvalidFormat).
			WithContext("format", format).
			WithHintf("Supported formats are %s, %s and %s.", FormatTable, FormatJSON, FormatYAML).
			Err()
	}

	report := runDoctor(ctx, cfg, client)

	if err := printDoctorReport(report, format); err != nil {
		return err
	}

	if !report.Healthy {
		return errUtils.Build(errUtils.ErrEnvNotReady).
			WithHint("Run `labctl setup` to configure the workshop environment.").
			Err()
	}
	return nil
}

// runDoctor performs the checks in setup order. Checks that cannot run
// because an earlier one failed are reported as skipped.
func runDoctor(ctx context.Context, cfg *schema.Configuration, client gcloudClient) doctorReport {
	report := doctorReport{Healthy: true}

	add := func(name string, status string, detail string) {
		report.Checks = append(report.Checks, doctorCheck{Name: name, Status: status, Detail: detail})
		if status == statusFailed {
			report.Healthy = false
		}
	}

	path, err := client.Resolve()
	if err != nil {
		add("gcloud binary", statusFailed, err.Error())
		for _, name := range []string{"gcloud version", "active account", "trial billing", "env record", "project", "billing link"} {
			add(name, statusSkipped, "")
		}
		return report
	}
	add("gcloud binary", statusOK, path)

	installed, err := client.Version(ctx)
	switch {
	case err != nil:
		add("gcloud version", statusFailed, err.Error())
	case client.CheckVersion(ctx, cfg.Gcloud.MinVersion) != nil:
		add("gcloud version", statusFailed, fmt.Sprintf("%s is below the minimum %s", installed, cfg.Gcloud.MinVersion))
	default:
		add("gcloud version", statusOK, installed)
	}

	account, err := client.ActiveAccount(ctx)
	switch {
	case err != nil:
		add("active account", statusFailed, err.Error())
	case account == "":
		add("active account", statusFailed, "no active account; run `gcloud auth login`")
	default:
		add("active account", statusOK, account)
	}

	accounts, accountsErr := client.ListBillingAccounts(ctx)
	if accountsErr != nil {
		add("trial billing", statusFailed, accountsErr.Error())
	} else if trial, terr := selectTrialAccount(accounts, cfg.Billing.Filter); terr != nil {
		add("trial billing", statusFailed, terr.Error())
	} else {
		add("trial billing", statusOK, fmt.Sprintf("%s (%s)", trial.ID, trial.DisplayName))
	}

	recorded, found, err := envfile.Get(cfg.Env.File, cfg.Env.Key)
	switch {
	case err != nil:
		add("env record", statusFailed, err.Error())
	case !found || recorded == "":
		add("env record", statusFailed, fmt.Sprintf("no %s recorded in %s", cfg.Env.Key, cfg.Env.File))
	default:
		add("env record", statusOK, fmt.Sprintf("%s=%s", cfg.Env.Key, recorded))
	}

	if recorded == "" {
		add("project", statusSkipped, "")
		add("billing link", statusSkipped, "")
		return report
	}

	if !client.ProjectExists(ctx, recorded) {
		add("project", statusFailed, fmt.Sprintf("project %s is not visible to the active account", recorded))
		add("billing link", statusSkipped, "")
		return report
	}
	add("project", statusOK, recorded)

	linked, err := client.ProjectBillingAccount(ctx, recorded)
	switch {
	case err != nil:
		add("billing link", statusFailed, err.Error())
	case linked == "":
		add("billing link", statusFailed, "no billing account linked")
	case accountsErr == nil && !isTrialBillingAccount(accounts, linked, cfg.Billing.Filter):
		add("billing link", statusFailed, fmt.Sprintf("linked to %s, which is not a trial account", linked))
	default:
		add("billing link", statusOK, linked)
	}

	return report
}

func printDoctorReport(report doctorReport, format string) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		u.PrintMessage(string(data))
	case FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		u.PrintMessage(strings.TrimRight(string(data), "\n"))
	default:
		printDoctorTable(report)
	}
	return nil
}

func printDoctorTable(report doctorReport) {
	if !terminal.IsTTYSupportForStdout() {
		for _, check := range report.Checks {
			u.PrintfMessage("%s\t%s\t%s\n", check.Name, check.Status, check.Detail)
		}
		return
	}

	mark := theme.Styles.Checkmark.String()
	if !report.Healthy {
		mark = theme.Styles.XMark.String()
	}
	u.PrintfMessage("%s Workshop Environment Status\n\n", mark)

	var rows [][]string
	for _, check := range report.Checks {
		indicator := theme.Styles.Checkmark.String()
		switch check.Status {
		case statusFailed:
			indicator = theme.Styles.XMark.String()
		case statusSkipped:
			indicator = theme.Styles.GrayText.Render("-")
		}
		rows = append(rows, []string{indicator, check.Name, check.Detail})
	}

	t := table.New().
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 1 {
				return lipgloss.NewStyle().
					Foreground(lipgloss.Color(theme.ColorCyan)).
					Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	u.PrintfMessage("%s\n", t)
}
