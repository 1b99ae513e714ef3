// Package envfile reads and updates the key=value line labctl owns inside a
// workshop env file, leaving every other line untouched.
package envfile

import (
	"os"
	"strings"

	errUtils "github.com/workshoplabs/labctl/errors"
	"github.com/workshoplabs/labctl/pkg/filesystem"
	"github.com/workshoplabs/labctl/pkg/perf"
	u "github.com/workshoplabs/labctl/pkg/utils"
)

// defaultFileMode is the file mode for newly created env files.
const defaultFileMode = 0o644

// Get returns the value of key in the env file at path. The second return is
// false when the file does not exist or does not define the key.
func Get(path string, key string) (string, bool, error) {
	defer perf.Track(nil, "envfile.Get")()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errUtils.Build(errUtils.ErrReadFile).
			WithCause(err).
			WithContext("path", path).
			Err()
	}

	for _, line := range strings.Split(string(data), "\n") {
		if value, ok := matchLine(line, key); ok {
			return value, true, nil
		}
	}

	return "", false, nil
}

// Set writes key=value into the env file at path.
//
// Three cases, in order:
//  1. path exists: the line defining key is rewritten in place (an `export `
//     prefix survives); if no line defines key, one is appended. All other
//     lines are preserved byte for byte.
//  2. path does not exist but templatePath does: the template's content is
//     taken as the starting point, updated the same way, and written to path.
//     The template file itself is never modified.
//  3. neither exists: path is created holding the single line key=value.
//
// The write is atomic and guarded by a lock file against concurrent runs.
func Set(path string, templatePath string, key string, value string) error {
	defer perf.Track(nil, "envfile.Set")()

	// The lock file and the atomic write both need the parent directory.
	if err := u.EnsureDir(path); err != nil {
		return errUtils.Build(errUtils.ErrWriteFile).
			WithCause(err).
			WithContext("path", path).
			Err()
	}

	return withFileLock(path, func() error {
		content, err := readSource(path, templatePath)
		if err != nil {
			return err
		}

		updated := setInContent(content, key, value)

		if err := filesystem.WriteFileAtomic(path, []byte(updated), defaultFileMode); err != nil {
			return errUtils.Build(errUtils.ErrWriteFile).
				WithCause(err).
				WithContext("path", path).
				Err()
		}
		return nil
	})
}

// readSource returns the starting content for a Set: the env file when it
// exists, the template when only it exists, or empty.
func readSource(path string, templatePath string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", errUtils.Build(errUtils.ErrReadFile).
			WithCause(err).
			WithContext("path", path).
			Err()
	}

	if templatePath == "" {
		return "", nil
	}

	data, err = os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errUtils.Build(errUtils.ErrReadFile).
			WithCause(err).
			WithContext("path", templatePath).
			Err()
	}
	return string(data), nil
}

// setInContent rewrites the line defining key, or appends one.
func setInContent(content string, key string, value string) string {
	if content == "" {
		return key + "=" + value + "\n"
	}

	// A trailing newline is normal for env files; strip it before splitting
	// so it does not produce a phantom empty line, and restore it on output.
	trimmed := strings.TrimSuffix(content, "\n")
	lines := strings.Split(trimmed, "\n")

	replaced := false
	for i, line := range lines {
		if _, ok := matchLine(line, key); !ok {
			continue
		}
		lines[i] = rewriteLine(line, key, value)
		replaced = true
		break
	}

	if !replaced {
		lines = append(lines, key+"="+value)
	}

	return strings.Join(lines, "\n") + "\n"
}

// matchLine reports whether line assigns key, returning the unquoted value.
// Comment lines never match. An `export ` prefix is recognized.
func matchLine(line string, key string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}

	if rest, ok := strings.CutPrefix(trimmed, "export "); ok {
		trimmed = strings.TrimSpace(rest)
	}

	after, ok := strings.CutPrefix(trimmed, key+"=")
	if !ok {
		return "", false
	}

	return unquote(strings.TrimSpace(after)), true
}

// rewriteLine replaces the value in an assignment line, keeping the leading
// whitespace and any `export ` prefix.
func rewriteLine(line string, key string, value string) string {
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]

	prefix := ""
	if strings.HasPrefix(strings.TrimSpace(line), "export ") {
		prefix = "export "
	}

	return indent + prefix + key + "=" + value
}

// unquote strips one matching pair of surrounding single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
