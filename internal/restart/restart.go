// Package restart drives the OpenClaw service after config changes.
package restart

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

const (
	binaryName = "openclaw"

	// settleDelay gives the service time to come back before health is probed
	settleDelay = 3 * time.Second
)

// MissingDependencyError reports that the OpenClaw CLI is not installed
type MissingDependencyError struct {
	Binary string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s executable not found in PATH, install OpenClaw first", e.Binary)
}

// RestartError reports a failed service restart, with the command output
type RestartError struct {
	Output string
	Err    error
}

func (e *RestartError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("failed to restart the OpenClaw service: %v", e.Err)
	}
	return fmt.Sprintf("failed to restart the OpenClaw service: %v\n%s", e.Err, e.Output)
}

func (e *RestartError) Unwrap() error {
	return e.Err
}

// Runner restarts the OpenClaw service through its own CLI
type Runner struct {
	binary   string
	out      io.Writer
	settle   time.Duration
	lookPath func(string) (string, error)
	run      func(name string, args ...string) ([]byte, error)
}

// New builds a Runner wired to the real openclaw binary
func New() *Runner {
	return &Runner{
		binary:   binaryName,
		out:      os.Stdout,
		settle:   settleDelay,
		lookPath: exec.LookPath,
		run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		},
	}
}

// Restart bounces the service and then probes its health. A failed probe is
// reported as a warning, not an error: the service may legitimately take
// longer to come up.
func (r *Runner) Restart() error {
	if _, err := r.lookPath(r.binary); err != nil {
		return &MissingDependencyError{Binary: r.binary}
	}

	fmt.Fprintf(r.out, "Restarting the OpenClaw service...\n")
	output, err := r.run(r.binary, "gateway", "restart")
	if err != nil {
		return &RestartError{Output: strings.TrimSpace(string(output)), Err: err}
	}

	time.Sleep(r.settle)

	if _, err := r.run(r.binary, "health"); err != nil {
		fmt.Fprintf(r.out, "⚠️  Service restarted but the health probe failed, check `%s health` manually\n", r.binary)
		return nil
	}

	fmt.Fprintf(r.out, "✓ Service restarted\n")
	return nil
}
