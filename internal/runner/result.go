package runner

// ExecResult holds the captured outcome of one shell execution.
type ExecResult struct {
	ExecID    string // unique identifier for this execution
	ExitCode  int    // process exit code
	Output    []byte // combined stdout+stderr (may be truncated)
	Truncated bool   // true if output exceeded the size cap
}
