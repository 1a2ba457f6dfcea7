package cli

import "github.com/danspam/bundlemap/pkg/runner"

// Exit codes for bundlemap.
const (
	// ExitSuccess indicates every bundle built successfully.
	ExitSuccess = 0

	// ExitBuildFailed indicates at least one bundle failed to build.
	ExitBuildFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code from a runner result.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() {
		return ExitBuildFailed
	}
	return ExitSuccess
}
