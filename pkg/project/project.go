// Package project generates and validates Google Cloud project identifiers
// for workshop lab projects.
package project

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"

	errUtils "github.com/workshoplabs/labctl/errors"
	"github.com/workshoplabs/labctl/pkg/perf"
)

// idPattern is the Google Cloud project ID rule: a lowercase letter first,
// then lowercase letters, digits or hyphens, ending on a letter or digit,
// 6 to 30 characters overall.
var idPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]$`)

// randomSuffixBytes is the entropy behind a generated ID, hex-encoded to
// twice as many characters.
const randomSuffixBytes = 6

// GenerateID returns a fresh project identifier: the prefix followed by a
// random hex suffix.
func GenerateID(prefix string) (string, error) {
	defer perf.Track(nil, "project.GenerateID")()

	suffix := make([]byte, randomSuffixBytes)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}

	return prefix + hex.EncodeToString(suffix), nil
}

// ValidateID checks id against the project identifier rule and returns
// ErrInvalidProjectID when it does not conform.
func ValidateID(id string) error {
	defer perf.Track(nil, "project.ValidateID")()

	if idPattern.MatchString(id) {
		return nil
	}

	return errUtils.Build(errUtils.ErrInvalidProjectID).
		WithContext("project_id", id).
		WithHint("project IDs are 6 to 30 characters long, start with a lowercase letter, " +
			"contain only lowercase letters, digits and hyphens, and do not end with a hyphen").
		Err()
}
