package errUtils

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorBuilder assembles a rich error from a base sentinel. The result still
// satisfies errors.Is against the base (and any extra sentinels), carries
// user-facing hints and context readable by the formatter, and optionally an
// explicit exit code.
type ErrorBuilder struct {
	base      error
	cause     error
	hints     []string
	context   []contextPair
	sentinels []error
	exitCode  *int
}

type contextPair struct {
	key   string
	value any
}

// Build starts a builder rooted at base. Base is typically one of the
// package sentinels.
func Build(base error) *ErrorBuilder {
	return &ErrorBuilder{base: base}
}

// WithCause records the underlying error. The built error wraps the cause so
// errors.Is and errors.As keep seeing it.
func (b *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	b.cause = cause
	return b
}

// WithHint adds a short suggestion shown to the user under the error message.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.hints = append(b.hints, hint)
	return b
}

// WithHintf adds a formatted hint.
func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.hints = append(b.hints, fmt.Sprintf(format, args...))
	return b
}

// WithContext attaches a key/value pair rendered in verbose error output.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.context = append(b.context, contextPair{key: key, value: value})
	return b
}

// WithSentinel marks the built error with an additional sentinel so
// errors.Is(err, sentinel) returns true.
func (b *ErrorBuilder) WithSentinel(sentinel error) *ErrorBuilder {
	b.sentinels = append(b.sentinels, sentinel)
	return b
}

// WithExitCode sets the process exit code used when this error reaches main.
func (b *ErrorBuilder) WithExitCode(code int) *ErrorBuilder {
	b.exitCode = &code
	return b
}

// Err finalizes the builder into a single error value.
func (b *ErrorBuilder) Err() error {
	if b.base == nil {
		return nil
	}

	err := b.base
	if b.cause != nil {
		err = errors.Mark(errors.Wrap(b.cause, b.base.Error()), b.base)
	}

	for _, pair := range b.context {
		err = errors.WithDetailf(err, "%s: %v", pair.key, pair.value)
	}

	for _, hint := range b.hints {
		err = errors.WithHint(err, hint)
	}

	for _, sentinel := range b.sentinels {
		err = errors.Mark(err, sentinel)
	}

	if b.exitCode != nil {
		err = ExitCodeError{Err: err, Code: *b.exitCode}
	}

	return err
}
