package generator

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/stackinit/stackinit/internal/config"
	"github.com/stackinit/stackinit/internal/core/project"
	"github.com/stackinit/stackinit/internal/resilience"
)

// SpringProjectDir is the directory the Initializr archive unpacks into.
const SpringProjectDir = "spring-boot-project"

// maxArchiveSize bounds the downloaded starter archive.
const maxArchiveSize = 64 << 20

// SpringBoot downloads a starter archive from Spring Initializr and unpacks it.
type SpringBoot struct {
	cfg    config.SpringConfig
	client *http.Client
	fs     afero.Fs
	policy resilience.RetryPolicy
	logger *slog.Logger
	status func(string)
}

// NewSpringBoot creates a SpringBoot generator.
func NewSpringBoot(cfg config.SpringConfig, opts ...Option) *SpringBoot {
	o := applyOptions(opts)
	return &SpringBoot{
		cfg:    cfg,
		client: o.client,
		fs:     o.fs,
		policy: o.policy,
		logger: o.logger,
		status: o.status,
	}
}

// ProjectDirName implements project.Generator.
func (g *SpringBoot) ProjectDirName() string { return SpringProjectDir }

// BuildURL returns the Initializr request URL for cfg.
func BuildURL(cfg config.SpringConfig) (string, error) {
	u, err := url.Parse(cfg.InitializrURL)
	if err != nil {
		return "", fmt.Errorf("parse initializr url: %w", err)
	}
	q := u.Query()
	q.Set("type", "maven-project")
	q.Set("language", "java")
	if cfg.BootVersion != "" {
		q.Set("bootVersion", cfg.BootVersion)
	}
	q.Set("groupId", cfg.GroupID)
	q.Set("artifactId", cfg.ArtifactID)
	q.Set("name", cfg.ArtifactID)
	q.Set("javaVersion", cfg.JavaVersion)
	q.Set("baseDir", SpringProjectDir)
	q.Set("dependencies", "web")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Generate downloads the starter archive and unpacks it under outputDir.
// The database is wired later by the configurator, so db only shows up in logs.
func (g *SpringBoot) Generate(ctx context.Context, outputDir string, db project.Database) (string, error) {
	projectDir := filepath.Join(outputDir, SpringProjectDir)
	if err := ensureAbsent(g.fs, projectDir); err != nil {
		return "", err
	}

	reqURL, err := BuildURL(g.cfg)
	if err != nil {
		return "", err
	}
	g.logger.Info("downloading spring boot starter", "url", reqURL, "database", db)

	policy := g.policy
	policy.OnRetry = func(attempt int, err error) {
		g.logger.Warn("download failed, retrying", "attempt", attempt, "error", err)
		g.status(fmt.Sprintf("Download failed, retrying (%d/%d)", attempt, policy.MaxRetries))
	}

	g.status("Downloading starter from " + hostOf(reqURL))
	var archive []byte
	err = resilience.Retry(ctx, policy, func() error {
		data, err := g.download(ctx, reqURL)
		if err != nil {
			return err
		}
		archive = data
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	g.status("Extracting archive")
	if err := Unzip(g.fs, archive, outputDir); err != nil {
		return "", err
	}
	g.logger.Debug("archive extracted", "dir", projectDir, "bytes", len(archive))
	return projectDir, nil
}

func (g *SpringBoot) download(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/zip")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &resilience.StatusError{URL: reqURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	if len(data) > maxArchiveSize {
		return nil, fmt.Errorf("archive larger than %d bytes", maxArchiveSize)
	}
	return data, nil
}

// Unzip extracts a zip archive held in memory into dest.
// Entries that would land outside dest are rejected before anything is written.
func Unzip(fsys afero.Fs, data []byte, dest string) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if errors.Is(err, zip.ErrInsecurePath) {
		return fmt.Errorf("%w: %w", ErrUnsafeArchivePath, err)
	}
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}

	dest = filepath.Clean(dest)
	targets := make([]string, len(zr.File))
	for i, f := range zr.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		targets[i] = target
	}

	for i, f := range zr.File {
		if err := extractEntry(fsys, f, targets[i]); err != nil {
			return err
		}
	}
	return nil
}

func safeJoin(dest, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeArchivePath, name)
	}
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeArchivePath, name)
	}
	return target, nil
}

func extractEntry(fsys afero.Fs, f *zip.File, target string) error {
	if f.FileInfo().IsDir() {
		if err := fsys.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", target, err)
		}
		return nil
	}

	if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
	}

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := fsys.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return dst.Close()
}

// ensureAbsent fails with ErrProjectExists when dir is already on disk.
func ensureAbsent(fsys afero.Fs, dir string) error {
	_, err := fsys.Stat(dir)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrProjectExists, dir)
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("stat %s: %w", dir, err)
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
