package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
)

// Selector produces the framework and database for a run.
// The CLI backs it with the interactive wizard or with flags.
type Selector interface {
	Select(ctx context.Context) (Selection, error)
}

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(ctx context.Context) (Selection, error)

// Select calls f(ctx).
func (f SelectorFunc) Select(ctx context.Context) (Selection, error) { return f(ctx) }

// StaticSelector always returns the same selection.
func StaticSelector(sel Selection) Selector {
	return SelectorFunc(func(context.Context) (Selection, error) { return sel, nil })
}

// Generator runs the external tool that creates a project skeleton.
type Generator interface {
	// Generate creates the project under outputDir and returns its directory.
	Generate(ctx context.Context, outputDir string, db Database) (string, error)

	// ProjectDirName is the directory name the generator creates under outputDir.
	ProjectDirName() string
}

// Pipeline stage names, in execution order.
const (
	StageSelect    = "Select"
	StageGenerate  = "Generate"
	StageLocate    = "Locate"
	StageConfigure = "Configure"
)

// RunResult summarizes a full pipeline run.
type RunResult struct {
	Selection  Selection
	ProjectDir string
	Configure  *ConfigureResult
}

// Pipeline runs select, generate, locate and configure strictly in sequence.
// Each stage starts only after the previous one returned without error.
type Pipeline struct {
	selector     Selector
	generators   map[Framework]Generator
	configurator Configurator
	fs           afero.Fs
	reporter     ProgressReporter
	logger       *slog.Logger
}

// PipelineOption customizes a Pipeline.
type PipelineOption func(*Pipeline)

// WithReporter sets the progress reporter.
func WithReporter(r ProgressReporter) PipelineOption {
	return func(p *Pipeline) {
		if r != nil {
			p.reporter = r
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithFs sets the filesystem used by the locate stage.
func WithFs(fsys afero.Fs) PipelineOption {
	return func(p *Pipeline) {
		if fsys != nil {
			p.fs = fsys
		}
	}
}

// NewPipeline creates a Pipeline. generators must hold one entry per framework
// the selector can return.
func NewPipeline(selector Selector, generators map[Framework]Generator, configurator Configurator, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		selector:     selector,
		generators:   generators,
		configurator: configurator,
		fs:           afero.NewOsFs(),
		reporter:     noopReporter{},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the pipeline for a project created under outputDir.
func (p *Pipeline) Run(ctx context.Context, outputDir string) (*RunResult, error) {
	outputDir = filepath.Clean(outputDir)

	// Stage 1: select
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.reporter.StepStart(StageSelect, "Collecting framework and database")
	sel, err := p.selector.Select(ctx)
	if err != nil {
		p.reporter.StepError(err)
		return nil, err
	}
	if err := sel.Validate(); err != nil {
		p.reporter.StepError(err)
		return nil, err
	}
	p.reporter.StepComplete(fmt.Sprintf("%s with %s", sel.Framework.DisplayName(), sel.Database.DisplayName()))
	p.logger.Info("selection collected", "framework", sel.Framework, "database", sel.Database)

	gen, ok := p.generators[sel.Framework]
	if !ok || gen == nil {
		err := fmt.Errorf("%w: no generator registered for %s", ErrUnknownFramework, sel.Framework)
		p.reporter.StepError(err)
		return nil, err
	}

	// Stage 2: generate
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.reporter.StepStart(StageGenerate, fmt.Sprintf("Generating %s project", sel.Framework.DisplayName()))
	projectDir, err := gen.Generate(ctx, outputDir, sel.Database)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrGenerateFailed, err)
		p.reporter.StepError(err)
		return nil, err
	}
	if projectDir == "" {
		projectDir = filepath.Join(outputDir, gen.ProjectDirName())
	}
	p.reporter.StepComplete(projectDir)

	// Stage 3: locate
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.reporter.StepStart(StageLocate, "Checking generated project")
	if err := RequireProjectDir(p.fs, projectDir); err != nil {
		p.reporter.StepError(err)
		return nil, err
	}
	p.reporter.StepComplete(projectDir)

	// Stage 4: configure
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.reporter.StepStart(StageConfigure, fmt.Sprintf("Wiring %s", sel.Database.DisplayName()))
	cfgResult, err := p.configurator.Configure(ctx, sel, projectDir)
	if err != nil {
		p.reporter.StepError(err)
		return nil, err
	}
	p.reporter.StepComplete(fmt.Sprintf("%d file(s) updated", len(cfgResult.Applied())))

	return &RunResult{
		Selection:  sel,
		ProjectDir: projectDir,
		Configure:  cfgResult,
	}, nil
}

// RequireProjectDir returns ErrProjectMissing unless dir exists and is a directory.
func RequireProjectDir(fsys afero.Fs, dir string) error {
	info, err := fsys.Stat(dir)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return fmt.Errorf("%w: %s", ErrProjectMissing, dir)
		}
		return fmt.Errorf("%w: stat %s: %w", ErrProjectMissing, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrProjectMissing, dir)
	}
	return nil
}
