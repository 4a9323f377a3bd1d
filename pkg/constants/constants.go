package constants

// CLIBinaryName is the name used in user-facing output to refer to the CLI.
const CLIBinaryName = "runsift"

// RunLogFileName is the fixed per-run log filename expected inside each run
// subdirectory. Subdirectories without this file are skipped entirely and do
// not count toward analysis totals.
const RunLogFileName = "log.txt"

// DebugEnvVar is the environment variable consulted by pkg/logger to enable
// namespaced debug output (e.g. RUNSIFT_DEBUG=cli:* or RUNSIFT_DEBUG=*).
const DebugEnvVar = "RUNSIFT_DEBUG"
