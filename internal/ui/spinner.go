package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner shows activity for an operation of unknown length.
type Spinner interface {
	SetTitle(title string)
	Stop()
}

// Progress creates spinners that match the terminal mode.
type Progress interface {
	Spinner(title string) Spinner
}

// progressImpl implements the Progress interface.
type progressImpl struct {
	theme     *Theme
	headless  *HeadlessManager
	writer    io.Writer
	interrupt func()
}

// ProgressOption customizes a Progress.
type ProgressOption func(*progressImpl)

// WithInterrupt sets the function called when the user presses Ctrl-C while
// a spinner is shown. It is usually the cancel func of the run context.
func WithInterrupt(fn func()) ProgressOption {
	return func(p *progressImpl) {
		p.interrupt = fn
	}
}

// NewProgress creates a Progress backed by the given theme and headless manager.
// A nil w means os.Stdout.
func NewProgress(theme *Theme, hm *HeadlessManager, w io.Writer, opts ...ProgressOption) Progress {
	if w == nil {
		w = os.Stdout
	}
	p := &progressImpl{theme: theme, headless: hm, writer: w}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Spinner creates an indeterminate spinner.
// In headless mode it prints the title as a log line.
func (p *progressImpl) Spinner(title string) Spinner {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return newHeadlessSpinner(title, p.writer)
	}
	return newInteractiveSpinner(p.theme, title, p.writer, p.interrupt)
}

// spinnerTitleMsg is sent to update the spinner title.
type spinnerTitleMsg string

// spinnerStopMsg is sent to stop the spinner.
type spinnerStopMsg struct{}

// spinnerModel is the bubbletea Model for the animated spinner.
type spinnerModel struct {
	spinner   spinner.Model
	title     string
	done      bool
	interrupt func()
}

func newSpinnerModel(theme *Theme, title string, interrupt func()) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !theme.NoColor {
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	}
	return spinnerModel{spinner: s, title: title, interrupt: interrupt}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			if m.interrupt != nil {
				m.interrupt()
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// interactiveSpinner implements Spinner with an animated bubbles spinner.
type interactiveSpinner struct {
	program *tea.Program
	once    sync.Once
}

// newInteractiveSpinner starts the program in the background; Stop waits for it to exit.
// The program does not read stdin, so the terminal stays in cooked mode and
// Ctrl-C reaches the process as SIGINT.
func newInteractiveSpinner(theme *Theme, title string, w io.Writer, interrupt func()) *interactiveSpinner {
	m := newSpinnerModel(theme, title, interrupt)
	p := tea.NewProgram(m, tea.WithOutput(w), tea.WithInput(nil))

	s := &interactiveSpinner{program: p}

	go func() {
		_, _ = p.Run()
	}()

	return s
}

// SetTitle updates the spinner title.
func (s *interactiveSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

// Stop halts the spinner.
func (s *interactiveSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		s.program.Wait()
	})
}

// headlessSpinner implements Spinner with plain text log output.
type headlessSpinner struct {
	title   string
	writer  io.Writer
	stopped bool
}

// newHeadlessSpinner creates a headless spinner that prints the title.
func newHeadlessSpinner(title string, w io.Writer) *headlessSpinner {
	s := &headlessSpinner{title: title, writer: w}
	_, _ = fmt.Fprintf(w, "%s\n", title)
	return s
}

// SetTitle updates the spinner title and prints a log line.
func (s *headlessSpinner) SetTitle(title string) {
	if s.stopped || title == s.title {
		return
	}
	s.title = title
	_, _ = fmt.Fprintf(s.writer, "%s\n", title)
}

// Stop halts the spinner.
func (s *headlessSpinner) Stop() {
	s.stopped = true
}
