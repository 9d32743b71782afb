package generator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/stackinit/stackinit/internal/config"
	"github.com/stackinit/stackinit/internal/core/project"
)

// NestProjectDir is the directory the Nest CLI creates.
const NestProjectDir = "nestjs-project"

// NestJS creates a project with the Nest CLI and installs the database driver packages.
type NestJS struct {
	cfg    config.NestConfig
	runner CommandRunner
	fs     afero.Fs
	logger *slog.Logger
	status func(string)
}

// NewNestJS creates a NestJS generator that runs commands through runner.
func NewNestJS(cfg config.NestConfig, runner CommandRunner, opts ...Option) *NestJS {
	o := applyOptions(opts)
	return &NestJS{
		cfg:    cfg,
		runner: runner,
		fs:     o.fs,
		logger: o.logger,
		status: o.status,
	}
}

// ProjectDirName implements project.Generator.
func (g *NestJS) ProjectDirName() string { return NestProjectDir }

// Generate runs the Nest CLI under outputDir and then installs the driver
// packages for db inside the new project.
func (g *NestJS) Generate(ctx context.Context, outputDir string, db project.Database) (string, error) {
	projectDir := filepath.Join(outputDir, NestProjectDir)
	if err := ensureAbsent(g.fs, projectDir); err != nil {
		return "", err
	}

	tmpl, err := project.NestTemplateFor(db)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, db)
	}

	g.status("Running Nest CLI")
	if err := g.runner.Run(ctx, outputDir, g.cfg.CLI, g.newArgs()...); err != nil {
		return "", fmt.Errorf("nest new: %w", err)
	}
	g.logger.Info("nest project created", "dir", projectDir)

	g.status("Installing " + strings.Join(tmpl.Packages, ", "))
	args := append([]string{installVerb(g.cfg.PackageManager)}, tmpl.Packages...)
	if err := g.runner.Run(ctx, projectDir, g.cfg.PackageManager, args...); err != nil {
		return "", fmt.Errorf("install driver packages: %w", err)
	}
	g.logger.Info("driver packages installed", "packages", tmpl.Packages)

	return projectDir, nil
}

// newArgs builds the "new" invocation. Through npx the CLI package is named
// explicitly; any other launcher is treated as the nest binary itself.
func (g *NestJS) newArgs() []string {
	args := []string{"new", NestProjectDir, "--package-manager", g.cfg.PackageManager, "--skip-git"}
	if strings.TrimSuffix(filepath.Base(g.cfg.CLI), ".cmd") == "npx" {
		return append([]string{"--yes", "@nestjs/cli"}, args...)
	}
	return args
}

func installVerb(packageManager string) string {
	if packageManager == "npm" {
		return "install"
	}
	return "add"
}
