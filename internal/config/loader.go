package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configName = ".stackinit"
	configType = "yaml"
	envPrefix  = "STACKINIT"
)

// Loader reads configuration from files, environment and .env files.
type Loader struct {
	fs      afero.Fs
	workDir string
	homeDir string
	logger  *slog.Logger
}

// LoaderOption customizes a Loader.
type LoaderOption func(*Loader)

// WithWorkDir sets the directory searched first for .stackinit.yaml and .env.
func WithWorkDir(dir string) LoaderOption {
	return func(l *Loader) { l.workDir = dir }
}

// WithHomeDir overrides the home directory lookup.
func WithHomeDir(dir string) LoaderOption {
	return func(l *Loader) { l.homeDir = dir }
}

// WithLogger sets the loader logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader backed by fsys. A nil fsys means the OS filesystem.
func NewLoader(fsys afero.Fs, opts ...LoaderOption) *Loader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	l := &Loader{fs: fsys, workDir: ".", logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	if l.homeDir == "" {
		if home, err := homedir.Dir(); err == nil {
			l.homeDir = home
		}
	}
	return l
}

// UserConfigPath returns the per-user config file path,
// $HOME/.config/stackinit/.stackinit.yaml.
func (l *Loader) UserConfigPath() string {
	return filepath.Join(l.homeDir, ".config", "stackinit", configName+"."+configType)
}

// Load builds the effective Config. When explicitPath is non-empty that file
// must exist; otherwise .stackinit.yaml is searched in the work directory,
// the home directory and $HOME/.config/stackinit, and a missing file is fine.
func (l *Loader) Load(explicitPath string) (*Config, error) {
	if err := l.loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(l.fs)
	for key, val := range defaultValues() {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfigRead, explicitPath, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(l.workDir)
		if l.homeDir != "" {
			v.AddConfigPath(l.homeDir)
			v.AddConfigPath(filepath.Dir(l.UserConfigPath()))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("%w: %w", ErrConfigRead, err)
			}
		}
	}
	if used := v.ConfigFileUsed(); used != "" {
		l.logger.Debug("config file loaded", "path", used)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrConfigRead, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv exports variables from .env and then .env.local in the work
// directory. Variables already present in the process environment win over
// .env; .env.local overrides both.
func (l *Loader) loadDotEnv() error {
	if err := l.applyEnvFile(filepath.Join(l.workDir, ".env"), false); err != nil {
		return err
	}
	return l.applyEnvFile(filepath.Join(l.workDir, ".env.local"), true)
}

func (l *Loader) applyEnvFile(path string, override bool) error {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %w", ErrConfigRead, path, err)
	}

	vars, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		// A broken .env must not block scaffolding.
		l.logger.Warn("ignoring unparsable env file", "path", path, "error", err)
		return nil
	}
	for key, val := range vars {
		if _, exists := os.LookupEnv(key); exists && !override {
			continue
		}
		if err := os.Setenv(key, val); err != nil {
			return fmt.Errorf("set %s from %s: %w", key, path, err)
		}
	}
	l.logger.Debug("env file loaded", "path", path, "vars", len(vars))
	return nil
}

// Save writes cfg as YAML to path, creating parent directories.
func (l *Loader) Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := l.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := afero.WriteFile(l.fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
