// Package runner provides the shell execution primitive: one command
// string run as a subprocess with combined output capture, a timeout,
// and an output size limit.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

// Runner executes command strings through a shell.
type Runner struct {
	Shell     []string // shell argv prefix, e.g. ["sh", "-c"]
	Timeout   time.Duration
	MaxOutput int // bytes
}

// outputGrace bounds how long Wait keeps draining the output pipe
// after the shell exits or the deadline passes. Without it a spawned
// child that inherits stdout/stderr and never exits (persistence-style
// commands daemonize exactly like this) would block Exec for the
// child's whole lifetime.
const outputGrace = 1 * time.Second

// Exec runs command through the shell and captures its combined output.
//
// A process that starts and exits (with any code) yields an ExecResult
// and a nil error. A non-nil error means the execution layer itself
// faulted: the shell is missing, the process could not start, or the
// command string is empty. Callers classify that fault; it is never an
// exit-code failure.
func (r *Runner) Exec(ctx context.Context, command string) (*ExecResult, error) {
	if command == "" {
		return nil, fmt.Errorf("empty command")
	}
	if len(r.Shell) == 0 {
		return nil, fmt.Errorf("no shell configured")
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	execID := uuid.New().String()

	argv := append(append([]string{}, r.Shell...), command)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.WaitDelay = outputGrace

	// Stdout and stderr interleave into one blob, matching what an
	// operator would see at a terminal.
	var out bytes.Buffer
	w := &limitWriter{buf: &out, limit: r.MaxOutput}
	cmd.Stdout = w
	cmd.Stderr = w

	runErr := cmd.Run()

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(runErr, exec.ErrWaitDelay):
			// The shell exited but a lingering child still holds the
			// output pipe; keep the shell's real exit status.
			exitCode = cmd.ProcessState.ExitCode()
		case errors.As(runErr, &exitErr):
			exitCode = exitErr.ExitCode()
		default:
			// Shell not found or other exec-layer fault.
			return nil, fmt.Errorf("executing %q: %w", command, runErr)
		}
	}

	return &ExecResult{
		ExecID:    execID,
		ExitCode:  exitCode,
		Output:    out.Bytes(),
		Truncated: out.Len() >= r.MaxOutput,
	}, nil
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Write only what fits, but report all bytes as consumed
		// to avoid short write errors from io.Copy.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
