package lfm

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess            = 0  // Browser exited normally
	ExitGeneralError       = 1  // Unknown or unclassified error
	ExitUsageError         = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic              = 3  // Internal panic (unexpected crash)
	ExitStartupPathInvalid = 10 // Startup path missing or not a directory
	ExitConfigError        = 11 // Malformed configuration file
)

const (
	// ParentMarkerName is the display name of the synthetic parent entry.
	ParentMarkerName = ".."

	// CacheFileName is the default file name of the persisted size cache,
	// placed under the user cache directory.
	CacheFileName = "sizecache.bin"

	// AppDirName is the per-user directory name used for config, cache and logs.
	AppDirName = "lfm"
)

// DefaultExcludedRoots lists pseudo-filesystem mount points that are never
// sized. Walking them is unbounded or meaningless.
var DefaultExcludedRoots = []string{"/proc", "/sys", "/dev", "/run"}
