package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/stackinit/stackinit/internal/core/project"
	"github.com/stackinit/stackinit/internal/ui"
)

// spinnerReporter shows a spinner per pipeline stage and a result line when
// the stage ends. The select stage never spins because it owns the terminal
// while prompting.
type spinnerReporter struct {
	mu       sync.Mutex
	progress ui.Progress
	theme    *ui.Theme
	w        io.Writer
	current  string
	spinner  ui.Spinner
}

func newSpinnerReporter(progress ui.Progress, theme *ui.Theme, w io.Writer) *spinnerReporter {
	return &spinnerReporter{progress: progress, theme: theme, w: w}
}

func (r *spinnerReporter) StepStart(name, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.current = name
	if name == project.StageSelect {
		return
	}
	r.spinner = r.progress.Spinner(message)
}

func (r *spinnerReporter) StepUpdate(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner != nil {
		r.spinner.SetTitle(message)
	}
}

func (r *spinnerReporter) StepComplete(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	_, _ = fmt.Fprintf(r.w, "%s %s %s\n",
		r.theme.Success.Render("✓"), r.current, r.theme.Muted.Render(message))
}

func (r *spinnerReporter) StepError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	_, _ = fmt.Fprintf(r.w, "%s %s\n", r.theme.Error.Render("✗"), r.current)
}

// Close stops any spinner still running.
func (r *spinnerReporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *spinnerReporter) stopLocked() {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
}
