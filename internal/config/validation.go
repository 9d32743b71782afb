package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-version"
)

// Dynamic token patterns that must not appear in configuration values.
// They show up when a shell or template variable was never expanded.
var dynamicTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[^}]+\}`),        // ${VAR}
	regexp.MustCompile(`\{\{[^}]+\}\}`),      // {{VAR}}
	regexp.MustCompile(`\$[A-Z_][A-Z0-9_]*`), // $VAR
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for correctness.
// All problems are collected into a single *ValidationErrors.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateStruct(cfg)...)
	errs = append(errs, validateBootVersion(cfg.Spring.BootVersion)...)
	errs = append(errs, validateDynamicTokens(cfg)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateStruct runs the struct tag rules.
func validateStruct(cfg *Config) []ValidationError {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Field: "config", Message: err.Error(), Wrapped: ErrInvalidConfig}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Namespace(),
			Message: ruleMessage(fe),
			Value:   fe.Value(),
			Wrapped: ErrInvalidConfig,
		})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be an absolute URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}

// validateBootVersion requires a parsable Spring Boot version at or above
// MinBootVersion. An empty value leaves the choice to Initializr.
// Pre-release suffixes such as -SNAPSHOT or -M1 are compared on their core version.
func validateBootVersion(raw string) []ValidationError {
	if raw == "" {
		return nil
	}
	v, err := version.NewVersion(raw)
	if err != nil {
		return []ValidationError{{
			Field:   "spring.boot_version",
			Message: "is not a valid version",
			Value:   raw,
			Wrapped: ErrUnsupportedBootVersion,
		}}
	}
	minVersion := version.Must(version.NewVersion(MinBootVersion))
	if v.Core().LessThan(minVersion) {
		return []ValidationError{{
			Field:   "spring.boot_version",
			Message: fmt.Sprintf("must be %s or newer", MinBootVersion),
			Value:   raw,
			Wrapped: ErrUnsupportedBootVersion,
		}}
	}
	return nil
}

// validateDynamicTokens flags values that still contain unexpanded variables.
func validateDynamicTokens(cfg *Config) []ValidationError {
	fields := []struct {
		name  string
		value string
	}{
		{"output_dir", cfg.OutputDir},
		{"spring.initializr_url", cfg.Spring.InitializrURL},
		{"spring.group_id", cfg.Spring.GroupID},
		{"spring.artifact_id", cfg.Spring.ArtifactID},
		{"nest.cli", cfg.Nest.CLI},
	}

	var errs []ValidationError
	for _, f := range fields {
		for _, re := range dynamicTokenPatterns {
			if re.MatchString(f.value) {
				errs = append(errs, ValidationError{
					Field:   f.name,
					Message: "contains unexpanded dynamic token",
					Value:   f.value,
					Wrapped: ErrDynamicToken,
				})
				break
			}
		}
	}
	return errs
}
