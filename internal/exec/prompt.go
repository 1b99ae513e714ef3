package exec

import (
	"github.com/charmbracelet/huh"
	"github.com/cockroachdb/errors"

	errUtils "github.com/workshoplabs/labctl/errors"
	log "github.com/workshoplabs/labctl/pkg/logger"
	"github.com/workshoplabs/labctl/pkg/perf"
	"github.com/workshoplabs/labctl/pkg/project"
	"github.com/workshoplabs/labctl/pkg/schema"
	"github.com/workshoplabs/labctl/pkg/terminal"
)

// resolveProjectID determines the identifier for a new project: the
// --project-id flag when given, otherwise an interactive prompt seeded with a
// generated default, or the default itself when --non-interactive is set or
// no terminal is attached.
func resolveProjectID(cfg *schema.Configuration, opts *SetupOptions) (string, error) {
	defer perf.Track(nil, "exec.resolveProjectID")()

	if opts.ProjectID != "" {
		if err := project.ValidateID(opts.ProjectID); err != nil {
			return "", err
		}
		return opts.ProjectID, nil
	}

	generated, err := project.GenerateID(cfg.Project.Prefix)
	if err != nil {
		return "", err
	}

	if opts.NonInteractive || !terminal.IsTTYSupportForStdin() {
		// A generated ID is only as valid as the configured prefix.
		if err := project.ValidateID(generated); err != nil {
			return "", err
		}
		log.Debug("Using generated project ID", "project", generated)
		return generated, nil
	}

	return promptProjectID(generated)
}

// promptProjectID asks for the project identifier, offering the generated
// default and validating inline.
func promptProjectID(defaultID string) (string, error) {
	projectID := defaultID

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project ID").
				Description("Identifier for the new workshop project.").
				Value(&projectID).
				Validate(project.ValidateID),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errUtils.ErrUserAborted
		}
		return "", errUtils.Build(errUtils.ErrTTYRequired).
			WithCause(err).
			WithHint("Pass --project-id or --non-interactive when running without a terminal.").
			Err()
	}

	return projectID, nil
}
