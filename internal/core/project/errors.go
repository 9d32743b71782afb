// Package project holds the domain core of stackinit: the framework and
// database selection, the literal template tables, the Project Configurator
// that splices those templates into a freshly generated project, and the
// linear pipeline that drives generation and configuration.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrUnknownFramework indicates a framework value outside the supported set.
	ErrUnknownFramework = errors.New("unknown framework: must be springboot or nestjs")

	// ErrUnknownDatabase indicates a database value outside the supported set.
	ErrUnknownDatabase = errors.New("unknown database: must be mysql or mongodb")

	// ErrMissingTemplate indicates a supported pair has no template entry.
	ErrMissingTemplate = errors.New("no template for selection")

	// ErrProjectMissing indicates the generator finished but the expected
	// project directory does not exist.
	ErrProjectMissing = errors.New("generated project directory not found")

	// ErrGenerateFailed indicates the external generator step failed.
	ErrGenerateFailed = errors.New("project generation failed")

	// ErrConfigureFailed indicates a configuration step hit an I/O error.
	ErrConfigureFailed = errors.New("project configuration failed")
)
