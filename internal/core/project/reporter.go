package project

import (
	"fmt"
	"io"
)

// ProgressReporter receives progress events from the pipeline.
type ProgressReporter interface {
	// StepStart is called when a stage begins.
	StepStart(name, message string)
	// StepUpdate reports intermediate progress inside a stage.
	StepUpdate(message string)
	// StepComplete is called when a stage finishes successfully.
	StepComplete(message string)
	// StepError is called when a stage fails.
	StepError(err error)
}

// consoleReporter prints one line per event.
type consoleReporter struct {
	w       io.Writer
	current string
}

// NewConsoleReporterTo creates a ProgressReporter that writes to w.
func NewConsoleReporterTo(w io.Writer) ProgressReporter {
	return &consoleReporter{w: w}
}

func (r *consoleReporter) StepStart(name, message string) {
	r.current = name
	_, _ = fmt.Fprintf(r.w, "  > %s: %s\n", name, message)
}

func (r *consoleReporter) StepUpdate(message string) {
	_, _ = fmt.Fprintf(r.w, "    %s\n", message)
}

func (r *consoleReporter) StepComplete(message string) {
	_, _ = fmt.Fprintf(r.w, "  ok %s: %s\n", r.current, message)
}

func (r *consoleReporter) StepError(err error) {
	_, _ = fmt.Fprintf(r.w, "  x %s: %v\n", r.current, err)
}

// noopReporter discards all events.
type noopReporter struct{}

func (noopReporter) StepStart(string, string) {}
func (noopReporter) StepUpdate(string)        {}
func (noopReporter) StepComplete(string)      {}
func (noopReporter) StepError(error)          {}
