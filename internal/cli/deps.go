// Package cli provides the Cobra command and dependency wiring for the
// stackinit CLI. This file defines the Dependencies struct (Composition
// Root) that wires the domain packages together.
package cli

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/afero"

	"github.com/stackinit/stackinit/internal/config"
	"github.com/stackinit/stackinit/internal/generator"
	"github.com/stackinit/stackinit/internal/ui"
	"github.com/stackinit/stackinit/pkg/version"
)

// Dependencies holds every service the scaffold command uses.
// Only this file instantiates concrete types.
type Dependencies struct {
	Config     *config.Config
	Loader     *config.Loader
	Fs         afero.Fs
	Runner     generator.CommandRunner
	HTTPClient *http.Client
	Theme      *ui.Theme
	Headless   *ui.HeadlessManager
	Logger     *slog.Logger
}

// deps is the dependencies instance for the current run. Tests may set it
// before executing the command; otherwise it is built from flags.
var deps *Dependencies

// DependencyOptions are the flag values that shape dependency wiring.
type DependencyOptions struct {
	Debug      bool
	ConfigPath string
	NoColor    bool
}

// newLogger returns a stderr debug logger when debug is set and a discarding
// logger otherwise.
func newLogger(debug bool) *slog.Logger {
	if debug {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// InitDependencies loads configuration and wires all dependencies.
func InitDependencies(opts DependencyOptions) (*Dependencies, error) {
	logger := newLogger(opts.Debug)
	fsys := afero.NewOsFs()

	loader := config.NewLoader(fsys, config.WithLogger(logger))
	cfg, err := loader.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("starting", "version", version.GetFullVersion(), "dev_build", version.IsDev())
	logger.Debug("configuration loaded",
		"output_dir", cfg.OutputDir,
		"boot_version", cfg.Spring.BootVersion,
		"package_manager", cfg.Nest.PackageManager,
	)

	var toolOutput io.Writer
	if opts.Debug {
		toolOutput = os.Stderr
	}

	return &Dependencies{
		Config:     cfg,
		Loader:     loader,
		Fs:         fsys,
		Runner:     generator.NewExecRunner(toolOutput, logger),
		HTTPClient: &http.Client{Timeout: cfg.Download.Timeout},
		Theme:      ui.NewTheme(ui.ThemeConfig{NoColor: opts.NoColor || os.Getenv("NO_COLOR") != ""}),
		Headless:   ui.NewHeadlessManager(),
		Logger:     logger,
	}, nil
}
