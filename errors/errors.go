// Package errUtils defines the sentinel errors shared across labctl and the
// helpers used to build, classify and print them.
//
// Sentinels are plain errors created with errors.New. Rich errors are built on
// top of them with Build(...), which attaches causes, hints and user-visible
// context while keeping errors.Is checks against the sentinel working.
package errUtils

import (
	"github.com/cockroachdb/errors"
)

// Authentication and environment errors.
var (
	// ErrGcloudNotFound indicates the gcloud binary is not installed or not in PATH.
	ErrGcloudNotFound = errors.New("gcloud CLI not found")

	// ErrGcloudVersion indicates the installed gcloud CLI is older than the configured minimum.
	ErrGcloudVersion = errors.New("gcloud CLI version below minimum")

	// ErrGcloudOperation indicates a gcloud invocation exited with an error.
	ErrGcloudOperation = errors.New("gcloud command failed")

	// ErrNotAuthenticated indicates gcloud has no active account.
	ErrNotAuthenticated = errors.New("no active gcloud account")

	// ErrEnvNotReady indicates one or more doctor checks failed.
	ErrEnvNotReady = errors.New("environment is not ready")
)

// Billing errors.
var (
	// ErrNoBillingAccounts indicates the active account can see no billing accounts at all.
	ErrNoBillingAccounts = errors.New("no billing accounts visible to the active account")

	// ErrNoTrialBillingAccount indicates billing accounts exist but none is an open trial.
	ErrNoTrialBillingAccount = errors.New("no open trial billing account found")

	// ErrBillingLink indicates linking a project to a billing account failed.
	ErrBillingLink = errors.New("failed to link billing account")
)

// Project errors.
var (
	// ErrInvalidProjectID indicates a project ID that violates the naming rules.
	ErrInvalidProjectID = errors.New("invalid project ID")

	// ErrProjectLookup indicates an existing project could not be inspected.
	ErrProjectLookup = errors.New("failed to look up project")

	// ErrProjectCreate indicates project creation failed.
	ErrProjectCreate = errors.New("failed to create project")

	// ErrProjectConfig indicates setting the default project failed.
	ErrProjectConfig = errors.New("failed to set default project")
)

// File and I/O errors.
var (
	ErrOpenFile  = errors.New("failed to open file")
	ErrReadFile  = errors.New("failed to read file")
	ErrWriteFile = errors.New("failed to write file")
	ErrLockFile  = errors.New("failed to lock file")
)

// Cache errors.
var (
	ErrCacheDir       = errors.New("failed to create cache directory")
	ErrCacheRead      = errors.New("failed to read cache file")
	ErrCacheUnmarshal = errors.New("failed to parse cache file")
	ErrCacheMarshal   = errors.New("failed to encode cache file")
	ErrCacheWrite     = errors.New("failed to write cache file")
	ErrCacheLocked    = errors.New("cache file is locked")
)

// CLI errors.
var (
	// ErrParseOutput indicates gcloud produced output labctl could not parse.
	ErrParseOutput = errors.New("unexpected gcloud output")

	// ErrInvalidFlag indicates an unsupported flag value.
	ErrInvalidFlag = errors.New("invalid flag")

	// ErrInvalidFormat indicates an unsupported output format.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrTTYRequired indicates an interactive prompt was needed but no terminal is attached.
	ErrTTYRequired = errors.New("interactive prompt requires a terminal")

	// ErrUserAborted indicates the user cancelled an interactive prompt.
	ErrUserAborted = errors.New("aborted by user")

	// ErrHookFailed indicates a post-setup hook returned a non-zero status.
	ErrHookFailed = errors.New("hook failed")
)
