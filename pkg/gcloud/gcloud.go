// Package gcloud wraps the Google Cloud CLI. Every operation shells out to
// the gcloud binary and parses its CSV output; nothing talks to Google APIs
// directly, so the user's existing gcloud authentication is reused as-is.
package gcloud

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-version"

	errUtils "github.com/workshoplabs/labctl/errors"
	log "github.com/workshoplabs/labctl/pkg/logger"
	"github.com/workshoplabs/labctl/pkg/perf"
)

// versionFormat extracts the SDK version from `gcloud version`. The component
// key contains spaces, so it is quoted inside the format expression.
const versionFormat = `csv[no-heading]("Google Cloud SDK")`

const accountFormat = "csv[no-heading](account)"

// Client invokes the gcloud binary.
type Client struct {
	bin string

	// DryRun makes mutating operations log the command they would run
	// instead of running it. Read-only operations still execute.
	DryRun bool
}

// NewClient creates a client for the given gcloud binary. An empty bin falls
// back to "gcloud" resolved from PATH.
func NewClient(bin string) *Client {
	if bin == "" {
		bin = "gcloud"
	}
	return &Client{bin: bin}
}

// Resolve locates the gcloud binary in PATH.
func (c *Client) Resolve() (string, error) {
	defer perf.Track(nil, "gcloud.Client.Resolve")()

	path, err := executor.LookPath(c.bin)
	if err != nil {
		return "", errUtils.Build(errUtils.ErrGcloudNotFound).
			WithCause(err).
			WithContext("bin", c.bin).
			WithHint("Install the Google Cloud SDK: https://cloud.google.com/sdk/docs/install").
			Err()
	}

	log.Debug("Found gcloud binary", "path", path)
	return path, nil
}

// Version returns the installed Google Cloud SDK version.
func (c *Client) Version(ctx context.Context) (string, error) {
	defer perf.Track(nil, "gcloud.Client.Version")()

	cmd := executor.CommandContext(ctx, c.bin, "version", "--format="+versionFormat)
	output, err := runOutput(cmd, "version")
	if err != nil {
		return "", err
	}

	records, err := parseCSV(output)
	if err != nil {
		return "", err
	}
	if len(records) == 0 || len(records[0]) == 0 || strings.TrimSpace(records[0][0]) == "" {
		return "", fmt.Errorf("%w: gcloud version produced no output", errUtils.ErrParseOutput)
	}

	return strings.TrimSpace(records[0][0]), nil
}

// CheckVersion verifies the installed SDK is at least minVersion. An empty
// minimum disables the check.
func (c *Client) CheckVersion(ctx context.Context, minVersion string) error {
	defer perf.Track(nil, "gcloud.Client.CheckVersion")()

	if minVersion == "" {
		return nil
	}

	minimum, err := version.NewVersion(minVersion)
	if err != nil {
		return fmt.Errorf("%w: invalid minimum version %q: %v", errUtils.ErrGcloudVersion, minVersion, err)
	}

	installed, err := c.Version(ctx)
	if err != nil {
		return err
	}

	current, err := version.NewVersion(installed)
	if err != nil {
		return fmt.Errorf("%w: cannot parse gcloud version %q: %v", errUtils.ErrParseOutput, installed, err)
	}

	if current.LessThan(minimum) {
		return errUtils.Build(errUtils.ErrGcloudVersion).
			WithContext("installed", installed).
			WithContext("minimum", minVersion).
			WithHint("Update the Google Cloud SDK with `gcloud components update`.").
			Err()
	}

	log.Debug("gcloud version check passed", "installed", installed, "minimum", minVersion)
	return nil
}

// ActiveAccount returns the account gcloud is currently authenticated as, or
// the empty string when no account is active.
func (c *Client) ActiveAccount(ctx context.Context) (string, error) {
	defer perf.Track(nil, "gcloud.Client.ActiveAccount")()

	cmd := executor.CommandContext(ctx, c.bin, "auth", "list", "--filter=status:ACTIVE", "--format="+accountFormat)
	output, err := runOutput(cmd, "auth list")
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

	account := strings.TrimSpace(records[0][0])
	if account != "" {
		log.Debug("Active gcloud account", "account", account)
	}
	return account, nil
}

// runOutput runs cmd and returns its stdout. On failure the captured stderr
// is folded into the error so the gcloud message reaches the user.
func runOutput(cmd *exec.Cmd, verb string) ([]byte, error) {
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: gcloud %s failed: %v: %s", errUtils.ErrGcloudOperation, verb, err, bytes.TrimSpace(exitErr.Stderr))
		}
		return nil, fmt.Errorf("%w: gcloud %s failed: %v", errUtils.ErrGcloudOperation, verb, err)
	}
	return output, nil
}

// parseCSV parses gcloud csv[no-heading] output into records.
func parseCSV(output []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(output))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUtils.ErrParseOutput, err)
	}
	return records, nil
}
