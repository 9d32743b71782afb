package config

import "time"

// Default values.
const (
	DefaultOutputDir = "."

	DefaultInitializrURL = "https://start.spring.io/starter.zip"
	// DefaultBootVersion is empty so Initializr picks its current default line.
	DefaultBootVersion   = ""
	DefaultJavaVersion   = "17"
	DefaultGroupID       = "com.example"
	DefaultArtifactID    = "demo"

	DefaultNestCLI        = "npx"
	DefaultPackageManager = "npm"

	DefaultDownloadTimeout = 60 * time.Second
	DefaultMaxRetries      = 3
	DefaultBaseDelay       = 500 * time.Millisecond

	// MinBootVersion is the oldest Spring Boot line the templates target.
	// It only applies when spring.boot_version is set.
	MinBootVersion = "3.0.0"
)

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		Spring: SpringConfig{
			InitializrURL: DefaultInitializrURL,
			BootVersion:   DefaultBootVersion,
			JavaVersion:   DefaultJavaVersion,
			GroupID:       DefaultGroupID,
			ArtifactID:    DefaultArtifactID,
		},
		Nest: NestConfig{
			CLI:            DefaultNestCLI,
			PackageManager: DefaultPackageManager,
		},
		Download: DownloadConfig{
			Timeout:    DefaultDownloadTimeout,
			MaxRetries: DefaultMaxRetries,
			BaseDelay:  DefaultBaseDelay,
		},
	}
}

// defaultValues flattens NewDefaultConfig into viper keys.
func defaultValues() map[string]any {
	d := NewDefaultConfig()
	return map[string]any{
		"output_dir":            d.OutputDir,
		"spring.initializr_url": d.Spring.InitializrURL,
		"spring.boot_version":   d.Spring.BootVersion,
		"spring.java_version":   d.Spring.JavaVersion,
		"spring.group_id":       d.Spring.GroupID,
		"spring.artifact_id":    d.Spring.ArtifactID,
		"nest.cli":              d.Nest.CLI,
		"nest.package_manager":  d.Nest.PackageManager,
		"download.timeout":      d.Download.Timeout,
		"download.max_retries":  d.Download.MaxRetries,
		"download.base_delay":   d.Download.BaseDelay,
	}
}
