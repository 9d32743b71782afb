package generator

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/afero"

	"github.com/stackinit/stackinit/internal/config"
	"github.com/stackinit/stackinit/internal/core/project"
	"github.com/stackinit/stackinit/internal/resilience"
)

// Option customizes a generator.
type Option func(*options)

type options struct {
	client *http.Client
	fs     afero.Fs
	policy resilience.RetryPolicy
	logger *slog.Logger
	status func(string)
}

// WithHTTPClient sets the client used for archive downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithFs sets the filesystem generated files are written to.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithRetryPolicy sets the download retry policy.
func WithRetryPolicy(p resilience.RetryPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger sets the generator logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStatus sets a callback for short human-readable status updates.
func WithStatus(fn func(string)) Option {
	return func(o *options) {
		if fn != nil {
			o.status = fn
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{
		client: http.DefaultClient,
		fs:     afero.NewOsFs(),
		policy: resilience.DefaultPolicy(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		status: func(string) {},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// PolicyFor derives the download retry policy from configuration.
func PolicyFor(cfg config.DownloadConfig) resilience.RetryPolicy {
	p := resilience.DefaultPolicy()
	p.MaxRetries = cfg.MaxRetries
	if cfg.BaseDelay > 0 {
		p.BaseDelay = cfg.BaseDelay
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	return p
}

// For returns the generator for framework.
func For(framework project.Framework, cfg *config.Config, runner CommandRunner, opts ...Option) (project.Generator, error) {
	switch framework {
	case project.FrameworkSpringBoot:
		return NewSpringBoot(cfg.Spring, opts...), nil
	case project.FrameworkNestJS:
		return NewNestJS(cfg.Nest, runner, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", project.ErrUnknownFramework, framework)
	}
}

// Registry returns a generator for every supported framework, ready for
// project.NewPipeline.
func Registry(cfg *config.Config, runner CommandRunner, opts ...Option) (map[project.Framework]project.Generator, error) {
	gens := make(map[project.Framework]project.Generator, len(project.Frameworks))
	for _, fw := range project.Frameworks {
		g, err := For(fw, cfg, runner, opts...)
		if err != nil {
			return nil, err
		}
		gens[fw] = g
	}
	return gens, nil
}
