// Package exec implements the operations behind the labctl commands.
package exec

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	errUtils "github.com/workshoplabs/labctl/errors"
	"github.com/workshoplabs/labctl/pkg/envfile"
	"github.com/workshoplabs/labctl/pkg/gcloud"
	"github.com/workshoplabs/labctl/pkg/hooks"
	log "github.com/workshoplabs/labctl/pkg/logger"
	"github.com/workshoplabs/labctl/pkg/perf"
	"github.com/workshoplabs/labctl/pkg/schema"
	"github.com/workshoplabs/labctl/pkg/ui/theme"
	u "github.com/workshoplabs/labctl/pkg/utils"
)

// gcloudClient is the part of the gcloud client the flows drive.
// *gcloud.Client implements it; tests substitute a fake.
type gcloudClient interface {
	Resolve() (string, error)
	Version(ctx context.Context) (string, error)
	CheckVersion(ctx context.Context, minVersion string) error
	ActiveAccount(ctx context.Context) (string, error)
	ListBillingAccounts(ctx context.Context) ([]gcloud.BillingAccount, error)
	ProjectBillingAccount(ctx context.Context, projectID string) (string, error)
	ProjectExists(ctx context.Context, projectID string) bool
	CreateProject(ctx context.Context, projectID string) error
	LinkProjectBilling(ctx context.Context, projectID string, accountID string) error
	SetDefaultProject(ctx context.Context, projectID string) error
}

// SetupOptions are the flag-driven knobs of `labctl setup`.
type SetupOptions struct {
	// ProjectID skips the prompt and names the project directly.
	ProjectID string
	// NonInteractive suppresses the prompt; the generated default is used.
	NonInteractive bool
	// EnvFile overrides the configured env file path.
	EnvFile string
	// EnvTemplate overrides the configured env template path.
	EnvTemplate string
	// DryRun logs the mutating gcloud commands instead of running them and
	// leaves the env file and hooks untouched.
	DryRun bool
}

// ExecuteSetup runs the workshop onboarding flow: verify the gcloud account,
// discover the trial billing account, reuse or create the workshop project,
// link billing, set the default project and record it in the env file.
func ExecuteSetup(ctx context.Context, cfg *schema.Configuration, opts *SetupOptions) error {
	defer perf.Track(nil, "exec.ExecuteSetup")()

	client := gcloud.NewClient(cfg.Gcloud.Bin)
	client.DryRun = opts.DryRun
	return executeSetup(ctx, cfg, opts, client)
}

func executeSetup(ctx context.Context, cfg *schema.Configuration, opts *SetupOptions, client gcloudClient) error {
	envFile, envTemplate := resolveEnvPaths(cfg, opts)

	if _, err := client.Resolve(); err != nil {
		return err
	}
	if err := client.CheckVersion(ctx, cfg.Gcloud.MinVersion); err != nil {
		return err
	}

	account, err := client.ActiveAccount(ctx)
	if err != nil {
		return err
	}
	if account == "" {
		return errUtils.Build(errUtils.ErrNotAuthenticated).
			WithHint("Run `gcloud auth login` and retry.").
			Err()
	}
	printStepOK("Authenticated as " + account)

	accounts, err := client.ListBillingAccounts(ctx)
	if err != nil {
		return err
	}
	trial, err := selectTrialAccount(accounts, cfg.Billing.Filter)
	if err != nil {
		return err
	}
	printStepOK(fmt.Sprintf("Using trial billing account %s (%s)", trial.ID, trial.DisplayName))

	var projectID string
	skipCreate := false

	recorded, found, err := envfile.Get(envFile, cfg.Env.Key)
	if err != nil {
		return err
	}
	if found && recorded != "" {
		state, linked, err := classifyRecordedProject(ctx, client, accounts, cfg.Billing.Filter, recorded)
		if err != nil {
			return err
		}

		switch state {
		case recordedTrial:
			printStepOK(fmt.Sprintf("Project %s already linked to trial billing account %s", recorded, linked))
			if err := client.SetDefaultProject(ctx, recorded); err != nil {
				return err
			}
			if !opts.DryRun {
				printStepOK("Set default project " + recorded)
			}
			u.PrintMessageInColor(fmt.Sprintf("\nWorkshop environment already configured. Project: %s\n", recorded), theme.Colors.Success)
			return nil

		case recordedUnlinked:
			log.Info("Recorded project has no billing account linked; relinking it", "project", recorded)
			projectID = recorded
			skipCreate = true

		case recordedOtherBilling:
			log.Warn("Recorded project is linked to a different billing account; creating a new project",
				"project", recorded, "billing_account", linked)

		case recordedMissing:
			log.Warn("Recorded project no longer exists; creating a new one", "project", recorded)
		}
	}

	if projectID == "" {
		projectID, err = resolveProjectID(cfg, opts)
		if err != nil {
			return err
		}
	}

	if !skipCreate {
		if err := client.CreateProject(ctx, projectID); err != nil {
			return err
		}
		if !opts.DryRun {
			printStepOK("Created project " + projectID)
		}
	}

	if err := client.LinkProjectBilling(ctx, projectID, trial.ID); err != nil {
		return err
	}
	if err := client.SetDefaultProject(ctx, projectID); err != nil {
		return err
	}
	if !opts.DryRun {
		printStepOK("Linked billing account " + trial.ID)
		printStepOK("Set default project " + projectID)
	}

	if opts.DryRun {
		log.Info("Dry run: would record project in env file", "path", envFile, "key", cfg.Env.Key, "value", projectID)
		for _, command := range cfg.Hooks.AfterSetup {
			log.Info("Dry run: would run after-setup hook", "command", command)
		}
		u.PrintMessage("\nDry run complete. No changes were made.")
		return nil
	}

	if err := envfile.Set(envFile, envTemplate, cfg.Env.Key, projectID); err != nil {
		return err
	}
	printStepOK(fmt.Sprintf("Recorded %s in %s", cfg.Env.Key, envFile))

	if err := hooks.RunAfterSetup(ctx, cfg, projectID); err != nil {
		return err
	}

	u.PrintMessageInColor(fmt.Sprintf("\nWorkshop environment ready. Project: %s\n", projectID), theme.Colors.Success)
	return nil
}

// selectTrialAccount picks the trial billing account from the listing: open
// and with the filter substring in its display name. When several match, the
// last one in listing order wins; the billing API exposes no creation
// timestamp, so listing order is the only order there is.
func selectTrialAccount(accounts []gcloud.BillingAccount, filter string) (gcloud.BillingAccount, error) {
	defer perf.Track(nil, "exec.selectTrialAccount")()

	if len(accounts) == 0 {
		return gcloud.BillingAccount{}, errUtils.Build(errUtils.ErrNoBillingAccounts).
			WithHint("Accept the workshop billing invitation, or ask the instructor to grant you access.").
			Err()
	}

	selected, index, ok := lo.FindLastIndexOf(accounts, func(account gcloud.BillingAccount) bool {
		return account.Open && strings.Contains(account.DisplayName, filter)
	})
	if !ok {
		return gcloud.BillingAccount{}, errUtils.Build(errUtils.ErrNoTrialBillingAccount).
			WithContext("filter", filter).
			WithHintf("None of the visible billing accounts is open with %q in its name. "+
				"Check `gcloud billing accounts list`.", filter).
			Err()
	}

	log.Debug("Selected trial billing account", "id", selected.ID, "name", selected.DisplayName, "index", index)
	return selected, nil
}

// isTrialBillingAccount reports whether the account with the given ID appears
// in the listing with a display name matching the trial filter. Open status is
// not checked here: billing that is already linked under a trial name counts
// as configured.
func isTrialBillingAccount(accounts []gcloud.BillingAccount, accountID string, filter string) bool {
	account, ok := lo.Find(accounts, func(a gcloud.BillingAccount) bool {
		return a.ID == accountID
	})
	return ok && strings.Contains(account.DisplayName, filter)
}

// recordedProjectState classifies the project named in the env file.
type recordedProjectState int

const (
	// recordedMissing: the project is gone or not visible; create a new one.
	recordedMissing recordedProjectState = iota
	// recordedUnlinked: the project exists without billing; relink it.
	recordedUnlinked
	// recordedTrial: the project already has trial billing; nothing to do.
	recordedTrial
	// recordedOtherBilling: linked to non-trial billing; create a new project.
	recordedOtherBilling
)

// classifyRecordedProject inspects the recorded project and returns its state
// together with the linked billing account ID when one is linked.
func classifyRecordedProject(ctx context.Context, client gcloudClient, accounts []gcloud.BillingAccount, filter string, projectID string) (recordedProjectState, string, error) {
	defer perf.Track(nil, "exec.classifyRecordedProject")()

	if !client.ProjectExists(ctx, projectID) {
		return recordedMissing, "", nil
	}

	linked, err := client.ProjectBillingAccount(ctx, projectID)
	if err != nil {
		return recordedMissing, "", errUtils.Build(errUtils.ErrProjectLookup).
			WithCause(err).
			WithContext("project_id", projectID).
			Err()
	}

	switch {
	case linked == "":
		return recordedUnlinked, "", nil
	case isTrialBillingAccount(accounts, linked, filter):
		return recordedTrial, linked, nil
	default:
		return recordedOtherBilling, linked, nil
	}
}

// resolveEnvPaths applies the flag overrides on top of the configured env
// file and template paths.
func resolveEnvPaths(cfg *schema.Configuration, opts *SetupOptions) (string, string) {
	envFile := cfg.Env.File
	if opts.EnvFile != "" {
		envFile = opts.EnvFile
	}
	envTemplate := cfg.Env.Template
	if opts.EnvTemplate != "" {
		envTemplate = opts.EnvTemplate
	}
	return envFile, envTemplate
}

// printStepOK prints a completed step with a green check mark.
func printStepOK(message string) {
	u.PrintfMessage("%s %s\n", theme.Styles.Checkmark.String(), message)
}
