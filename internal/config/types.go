package config

import "time"

// Config is the effective stackinit configuration.
type Config struct {
	OutputDir string         `mapstructure:"output_dir" yaml:"output_dir" validate:"required"`
	Spring    SpringConfig   `mapstructure:"spring" yaml:"spring"`
	Nest      NestConfig     `mapstructure:"nest" yaml:"nest"`
	Download  DownloadConfig `mapstructure:"download" yaml:"download"`
}

// SpringConfig controls the Spring Initializr request.
type SpringConfig struct {
	InitializrURL string `mapstructure:"initializr_url" yaml:"initializr_url" validate:"required,url"`
	BootVersion   string `mapstructure:"boot_version" yaml:"boot_version"`
	JavaVersion   string `mapstructure:"java_version" yaml:"java_version" validate:"required,oneof=17 21 25"`
	GroupID       string `mapstructure:"group_id" yaml:"group_id" validate:"required"`
	ArtifactID    string `mapstructure:"artifact_id" yaml:"artifact_id" validate:"required"`
}

// NestConfig controls how the Nest CLI and the package installer are invoked.
type NestConfig struct {
	CLI            string `mapstructure:"cli" yaml:"cli" validate:"required"`
	PackageManager string `mapstructure:"package_manager" yaml:"package_manager" validate:"required,oneof=npm yarn pnpm"`
}

// DownloadConfig controls archive downloads.
type DownloadConfig struct {
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=1s"`
	MaxRetries int           `mapstructure:"max_retries" yaml:"max_retries" validate:"gte=0,lte=10"`
	BaseDelay  time.Duration `mapstructure:"base_delay" yaml:"base_delay" validate:"min=1ms"`
}
