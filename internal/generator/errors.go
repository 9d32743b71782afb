// Package generator runs the third-party tools that create a fresh
// Spring Boot or NestJS project skeleton on disk.
package generator

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for generator operations.
var (
	// ErrToolNotFound indicates a required executable is not on PATH.
	ErrToolNotFound = errors.New("generator: required tool not found")

	// ErrProjectExists indicates the target project directory is already present.
	ErrProjectExists = errors.New("generator: project directory already exists")

	// ErrUnsafeArchivePath indicates an archive entry would escape the output directory.
	ErrUnsafeArchivePath = errors.New("generator: archive entry escapes output directory")

	// ErrDownloadFailed indicates the project archive could not be fetched.
	ErrDownloadFailed = errors.New("generator: download failed")
)

// ExitError is returned when an external command exits with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + lastLines(s, 5)
	}
	return msg
}

// lastLines keeps the tail of noisy tool output.
func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
