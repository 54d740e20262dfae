package install

// Options controls installer behavior. It is built once from CLI flags and
// never modified by the orchestrator.
type Options struct {
	SkipChecks     bool
	SkipMigrations bool
	SkipSetup      bool
	Force          bool
}

// ExitStatus is the process-level result of an install run.
type ExitStatus int

const (
	// Success maps to exit code 0.
	Success ExitStatus = iota
	// Failure maps to exit code 1.
	Failure
)

// Code returns the process exit code.
func (s ExitStatus) Code() int {
	if s == Success {
		return 0
	}
	return 1
}

// State is the outcome of the installed-state probe.
type State int

const (
	// StateNotInstalled means at least one install marker is missing.
	StateNotInstalled State = iota
	// StateInstalled means every install marker is present.
	StateInstalled
	// StateIndeterminate means the probe failed. The gate treats it as not installed.
	StateIndeterminate
)

func (s State) String() string {
	switch s {
	case StateInstalled:
		return "installed"
	case StateIndeterminate:
		return "indeterminate"
	default:
		return "not installed"
	}
}
