package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/stackinit/stackinit/internal/ui"
)

// runForm runs a single form. Tests replace it to avoid a TTY.
var runForm = func(ctx context.Context, f *huh.Form) error {
	return f.RunWithContext(ctx)
}

// Run asks every question whose condition holds, starting from initial.
// Each question runs as its own huh.Form to avoid the huh v0.8.x
// YOffset scroll bug that occurs when multiple groups share a single viewport.
func Run(ctx context.Context, questions []Question, initial WizardResult) (*WizardResult, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	result := initial
	theme := newWizardTheme()

	for i := range questions {
		q := &questions[i]
		if q.Condition != nil && !q.Condition(&result) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		selected := q.Default
		form := huh.NewForm(huh.NewGroup(buildSelectField(q, &selected))).
			WithTheme(theme).
			WithAccessible(false)

		if err := runForm(ctx, form); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard error: %w", err)
		}
		saveAnswer(q.ID, selected, &result)
	}

	return &result, nil
}

// RunWithDefaults asks the default questions not already answered in initial.
func RunWithDefaults(ctx context.Context, initial WizardResult) (*WizardResult, error) {
	return Run(ctx, DefaultQuestions(), initial)
}

// buildSelectField creates a huh.Select bound to selected.
// Options are static so huh sizes the viewport to the option count.
func buildSelectField(q *Question, selected *string) *huh.Select[string] {
	opts := make([]huh.Option[string], len(q.Options))
	for i, opt := range q.Options {
		key := opt.Label
		if opt.Desc != "" {
			key = opt.Label + " - " + opt.Desc
		}
		opts[i] = huh.NewOption(key, opt.Value)
	}

	return huh.NewSelect[string]().
		Title(q.Title).
		Description(q.Description).
		Options(opts...).
		Value(selected)
}

// saveAnswer stores an answer in the result.
func saveAnswer(id, value string, result *WizardResult) {
	switch id {
	case QuestionFramework:
		result.Framework = value
	case QuestionDatabase:
		result.Database = value
	}
}

// newWizardTheme creates a huh.Theme in the stackinit palette.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: ui.ColorPrimary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: ui.ColorSuccess}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ui.ColorError}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: ui.ColorText}
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: ui.ColorMuted}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ui.ColorBorder}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.NextIndicator = t.Focused.NextIndicator.Foreground(primary)
	t.Focused.PrevIndicator = t.Focused.PrevIndicator.Foreground(primary)
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
