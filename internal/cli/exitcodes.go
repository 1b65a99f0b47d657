package cli

import (
	"errors"
	"io/fs"
)

// Exit codes for gomdview.
const (
	// ExitSuccess indicates every document rendered.
	ExitSuccess = 0

	// ExitRenderErrors indicates the run completed but some documents failed.
	ExitRenderErrors = 1

	// ExitOutdated indicates a check run found outdated outputs.
	ExitOutdated = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ConfigError marks a failure to load or validate configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "configuration: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cfgErr *ConfigError
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, ErrRenderFailed):
		return ExitRenderErrors
	case errors.Is(err, ErrOutputsOutdated):
		return ExitOutdated
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case errors.As(err, &pathErr), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
