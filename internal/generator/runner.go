package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command in a working directory.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// installHints maps tool names to a short installation hint.
var installHints = map[string]string{
	"npx":  "install Node.js from https://nodejs.org",
	"npm":  "install Node.js from https://nodejs.org",
	"yarn": "run `npm install -g yarn`",
	"pnpm": "run `npm install -g pnpm`",
	"nest": "run `npm install -g @nestjs/cli`",
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdout receives the command's standard output. Nil discards it.
	Stdout io.Writer
	logger *slog.Logger
}

// NewExecRunner creates an ExecRunner. stdout may be nil.
func NewExecRunner(stdout io.Writer, logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ExecRunner{Stdout: stdout, logger: logger}
}

// Run executes name with args in dir. A missing binary yields ErrToolNotFound
// and a non-zero exit yields *ExitError carrying the captured stderr.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		hint := installHints[name]
		if hint == "" {
			hint = "make sure it is installed and on PATH"
		}
		return fmt.Errorf("%w: %s (%s)", ErrToolNotFound, name, hint)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = &stderr

	cmdline := strings.Join(append([]string{name}, args...), " ")
	r.logger.Debug("running command", "cmd", cmdline, "dir", dir)

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: cmdline, Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return fmt.Errorf("run %s: %w", cmdline, err)
	}
	return nil
}
