package lfm

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	state, err := navigation.New(index, gw, path)
//	if errors.Is(err, lfm.ErrStartupPathInvalid) {
//	    // Nothing was rendered; report the path and exit
//	}
var (
	// ErrStartupPathInvalid indicates the initial path does not exist,
	// cannot be canonicalized or is not a directory.
	ErrStartupPathInvalid = errors.New("invalid startup path")

	// ErrNotNavigable indicates an activate on a file or a vanished entry.
	ErrNotNavigable = errors.New("not navigable")

	// ErrEnumerationFailed indicates a directory could not be listed.
	ErrEnumerationFailed = errors.New("cannot list directory")

	// ErrCachePersistence indicates the size cache file could not be read or written.
	ErrCachePersistence = errors.New("size cache persistence failed")

	// ErrInvalidConfig indicates the configuration file is malformed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAlreadyExists indicates a create operation targeted an existing path.
	ErrAlreadyExists = errors.New("already exists")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrStartupPathInvalid):
		return ExitStartupPathInvalid
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	}

	// cobra reports argument and flag problems as plain errors
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "invalid argument") ||
		strings.HasPrefix(errStr, "required flag") ||
		strings.HasPrefix(errStr, "missing required argument") ||
		strings.Contains(errStr, "arg(s), received") {
		return ExitUsageError
	}

	return ExitGeneralError
}
