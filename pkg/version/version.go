// Package version exposes build metadata injected via -ldflags.
package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Build-time variables injected via -ldflags.
// Default version for development builds (overridden by -ldflags in production)
var (
	Version = "v1.0.0"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetCommit returns the build commit hash.
func GetCommit() string {
	return Commit
}

// GetDate returns the build date.
func GetDate() string {
	return Date
}

// GetFullVersion returns a formatted full version string.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}

// Semver parses Version. Development builds with a non-semantic version
// string return an error.
func Semver() (*goversion.Version, error) {
	v, err := goversion.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("parse version %q: %w", Version, err)
	}
	return v, nil
}

// IsDev reports whether this binary was built without a release version.
func IsDev() bool {
	v, err := Semver()
	return err != nil || v.Prerelease() != ""
}
