package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Configurator rewrites a generated project's files for the selected database.
type Configurator interface {
	// Configure dispatches on the selection's framework.
	Configure(ctx context.Context, sel Selection, projectPath string) (*ConfigureResult, error)

	// ConfigureSpringBoot splices the dependency snippet into pom.xml and
	// overwrites application.yml.
	ConfigureSpringBoot(projectPath string, db Database) ([]FileChange, error)

	// ConfigureNestJS appends the module snippet to src/app.module.ts.
	ConfigureNestJS(projectPath string, db Database) (FileChange, error)
}

// projectConfigurator is the concrete implementation of Configurator.
type projectConfigurator struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewConfigurator creates a Configurator that works on fsys.
// A nil fsys means the OS filesystem; a nil logger discards output.
func NewConfigurator(fsys afero.Fs, logger *slog.Logger) Configurator {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &projectConfigurator{fs: fsys, logger: logger}
}

// Configure runs the framework-specific configuration for sel.
func (c *projectConfigurator) Configure(ctx context.Context, sel Selection, projectPath string) (*ConfigureResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	result := &ConfigureResult{Selection: sel}

	switch sel.Framework {
	case FrameworkSpringBoot:
		changes, err := c.ConfigureSpringBoot(projectPath, sel.Database)
		if err != nil {
			return nil, err
		}
		result.Changes = changes
	case FrameworkNestJS:
		change, err := c.ConfigureNestJS(projectPath, sel.Database)
		if err != nil {
			return nil, err
		}
		result.Changes = []FileChange{change}
	}

	for _, ch := range result.Changes {
		c.logger.Info("configure step finished", "file", ch.Path, "outcome", ch.Outcome.String())
	}
	return result, nil
}

// ConfigureSpringBoot wires db into a Spring Boot project.
//
// A missing pom.xml makes the whole call a no-op. A pom.xml without the
// closing dependencies marker is left unchanged, but application.yml is
// still replaced.
func (c *projectConfigurator) ConfigureSpringBoot(projectPath string, db Database) ([]FileChange, error) {
	tmpl, err := SpringTemplateFor(db)
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(projectPath, SpringManifestFile)
	configPath := filepath.Join(projectPath, filepath.FromSlash(SpringConfigFile))

	info, err := c.fs.Stat(manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("manifest not found, nothing to configure", "path", manifestPath)
			return []FileChange{{Path: manifestPath, Outcome: OutcomeSkippedFileAbsent}}, nil
		}
		return nil, fmt.Errorf("%w: stat %s: %w", ErrConfigureFailed, manifestPath, err)
	}

	manifestChange, err := c.insertDependency(manifestPath, info.Mode().Perm(), tmpl.Dependency)
	if err != nil {
		return nil, err
	}

	if err := c.fs.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrConfigureFailed, filepath.Dir(configPath), err)
	}
	if err := afero.WriteFile(c.fs, configPath, []byte(tmpl.ApplicationYAML), 0o644); err != nil {
		return nil, fmt.Errorf("%w: write %s: %w", ErrConfigureFailed, configPath, err)
	}

	return []FileChange{
		manifestChange,
		{Path: configPath, Outcome: OutcomeApplied},
	}, nil
}

// insertDependency splices snippet in front of the first ManifestMarker.
func (c *projectConfigurator) insertDependency(path string, perm os.FileMode, snippet string) (FileChange, error) {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return FileChange{}, fmt.Errorf("%w: read %s: %w", ErrConfigureFailed, path, err)
	}

	content := string(data)
	idx := strings.Index(content, ManifestMarker)
	if idx < 0 {
		c.logger.Warn("dependencies marker not found, manifest left unchanged", "path", path, "marker", ManifestMarker)
		return FileChange{Path: path, Outcome: OutcomeSkippedMarkerAbsent}, nil
	}

	var b strings.Builder
	b.Grow(len(content) + len(snippet))
	b.WriteString(content[:idx])
	b.WriteString(snippet)
	b.WriteString(content[idx:])

	if err := afero.WriteFile(c.fs, path, []byte(b.String()), perm); err != nil {
		return FileChange{}, fmt.Errorf("%w: write %s: %w", ErrConfigureFailed, path, err)
	}
	return FileChange{Path: path, Outcome: OutcomeApplied}, nil
}

// ConfigureNestJS appends the db snippet to the root module.
// The file is not parsed; the snippet is concatenated as-is.
func (c *projectConfigurator) ConfigureNestJS(projectPath string, db Database) (FileChange, error) {
	tmpl, err := NestTemplateFor(db)
	if err != nil {
		return FileChange{}, err
	}

	modulePath := filepath.Join(projectPath, filepath.FromSlash(NestModuleFile))

	if _, err := c.fs.Stat(modulePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("module file not found, nothing to configure", "path", modulePath)
			return FileChange{Path: modulePath, Outcome: OutcomeSkippedFileAbsent}, nil
		}
		return FileChange{}, fmt.Errorf("%w: stat %s: %w", ErrConfigureFailed, modulePath, err)
	}

	f, err := c.fs.OpenFile(modulePath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return FileChange{}, fmt.Errorf("%w: open %s: %w", ErrConfigureFailed, modulePath, err)
	}
	if _, err := f.WriteString(tmpl.ModuleSnippet); err != nil {
		_ = f.Close()
		return FileChange{}, fmt.Errorf("%w: append %s: %w", ErrConfigureFailed, modulePath, err)
	}
	if err := f.Close(); err != nil {
		return FileChange{}, fmt.Errorf("%w: close %s: %w", ErrConfigureFailed, modulePath, err)
	}

	return FileChange{Path: modulePath, Outcome: OutcomeApplied}, nil
}
