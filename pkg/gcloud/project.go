package gcloud

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	errUtils "github.com/workshoplabs/labctl/errors"
	log "github.com/workshoplabs/labctl/pkg/logger"
	"github.com/workshoplabs/labctl/pkg/perf"
)

// ProjectExists reports whether the project is visible to the active account.
// Any describe failure counts as not visible; a project the user cannot
// describe cannot be reused, so the caller falls back to creating one.
func (c *Client) ProjectExists(ctx context.Context, projectID string) bool {
	defer perf.Track(nil, "gcloud.Client.ProjectExists")()

	cmd := executor.CommandContext(ctx, c.bin, "projects", "describe", projectID, "--format=csv[no-heading](projectId)")
	if err := cmd.Run(); err != nil {
		log.Debug("Project not visible", "project", projectID, "error", err)
		return false
	}
	return true
}

// CreateProject creates a new project named after its identifier.
func (c *Client) CreateProject(ctx context.Context, projectID string) error {
	defer perf.Track(nil, "gcloud.Client.CreateProject")()

	args := []string{"projects", "create", projectID, "--name=" + projectID}
	if c.DryRun {
		log.Info("Dry run: would create project", "command", c.bin+" "+strings.Join(args, " "))
		return nil
	}

	cmd := executor.CommandContext(ctx, c.bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errUtils.Build(errUtils.ErrProjectCreate).
			WithCause(fmt.Errorf("gcloud projects create failed: %v: %s", err, bytes.TrimSpace(output))).
			WithContext("project_id", projectID).
			WithHint("Project IDs are global across Google Cloud; pick a different identifier and rerun.").
			Err()
	}

	log.Debug("Created project", "project", projectID)
	return nil
}

// SetDefaultProject makes the project the gcloud default for later commands.
func (c *Client) SetDefaultProject(ctx context.Context, projectID string) error {
	defer perf.Track(nil, "gcloud.Client.SetDefaultProject")()

	args := []string{"config", "set", "project", projectID}
	if c.DryRun {
		log.Info("Dry run: would set default project", "command", c.bin+" "+strings.Join(args, " "))
		return nil
	}

	cmd := executor.CommandContext(ctx, c.bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: gcloud config set project failed: %v: %s", errUtils.ErrProjectConfig, err, bytes.TrimSpace(output))
	}

	log.Debug("Set default project", "project", projectID)
	return nil
}
