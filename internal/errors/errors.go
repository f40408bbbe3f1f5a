// Package errors defines the failure modes of oascurl and how each one maps
// to process exit status. Fatal errors terminate with exit code 1; the
// non-fatal ones are reported as warnings and the run ends successfully.
package errors

import (
	"errors"
	"fmt"
)

// Standard error variables for every condition the CLI reports
var (
	ErrMissingArgument = errors.New("missing spec file argument")
	ErrFileNotFound    = errors.New("file not found")
	ErrRead            = errors.New("error reading file")
	ErrParse           = errors.New("error parsing YAML")
	ErrInvalidShape    = errors.New("invalid document shape")
	ErrWrite           = errors.New("error writing file")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrNonCompliant    = errors.New("operations missing a unix socket curl example")

	// Non-fatal: the run stops early and exits 0
	ErrEmptyInput   = errors.New("file is empty")
	ErrMissingPaths = errors.New("no 'paths' section found")
)

// IsFatal reports whether err should terminate the process with a failure status
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrEmptyInput) && !errors.Is(err, ErrMissingPaths)
}

// ExitCode returns the process exit status for err
func ExitCode(err error) int {
	if IsFatal(err) {
		return 1
	}
	return 0
}

// Is reports whether any error in err's tree matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Wrap annotates a sentinel with the item it applies to, e.g. the file path
func Wrap(sentinel error, item string) error {
	return fmt.Errorf("%w: %s", sentinel, item)
}

// WrapCause annotates a sentinel with an item and the underlying cause
func WrapCause(sentinel error, item string, cause error) error {
	return fmt.Errorf("%w: %s: %w", sentinel, item, cause)
}
