// Package wizard provides the interactive huh-based prompts that ask
// which framework and database to scaffold.
package wizard

import (
	"errors"

	"github.com/stackinit/stackinit/internal/core/project"
)

// WizardResult holds the user's selections.
type WizardResult struct {
	Framework string // springboot or nestjs
	Database  string // mysql or mongodb
}

// Selection converts the answers into a validated project.Selection.
func (r *WizardResult) Selection() (project.Selection, error) {
	return project.NewSelection(r.Framework, r.Database)
}

// Question defines a single single-choice wizard question.
type Question struct {
	ID          string                   // Unique identifier
	Title       string                   // Question title
	Description string                   // Additional description
	Options     []Option                 // Choices, default first
	Default     string                   // Default value
	Condition   func(*WizardResult) bool // Condition for showing this question
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
)
