package project

import (
	"fmt"
	"slices"
	"strings"
)

// Framework is a supported backend scaffold.
type Framework string

// Supported frameworks.
const (
	FrameworkSpringBoot Framework = "springboot"
	FrameworkNestJS     Framework = "nestjs"
)

// Frameworks lists every framework in prompt order.
var Frameworks = []Framework{FrameworkSpringBoot, FrameworkNestJS}

// Database is a supported persistence backend.
type Database string

// Supported databases.
const (
	DatabaseMySQL   Database = "mysql"
	DatabaseMongoDB Database = "mongodb"
)

// Databases lists every database in prompt order.
var Databases = []Database{DatabaseMySQL, DatabaseMongoDB}

// String implements fmt.Stringer.
func (f Framework) String() string { return string(f) }

// String implements fmt.Stringer.
func (d Database) String() string { return string(d) }

// DisplayName returns the human readable framework name.
func (f Framework) DisplayName() string {
	switch f {
	case FrameworkSpringBoot:
		return "Spring Boot"
	case FrameworkNestJS:
		return "NestJS"
	default:
		return string(f)
	}
}

// DisplayName returns the human readable database name.
func (d Database) DisplayName() string {
	switch d {
	case DatabaseMySQL:
		return "MySQL"
	case DatabaseMongoDB:
		return "MongoDB"
	default:
		return string(d)
	}
}

// Valid reports whether f is one of the supported frameworks.
func (f Framework) Valid() bool {
	return f == FrameworkSpringBoot || f == FrameworkNestJS
}

// Valid reports whether d is one of the supported databases.
func (d Database) Valid() bool {
	return d == DatabaseMySQL || d == DatabaseMongoDB
}

// ParseFramework converts user input to a Framework.
// Matching is case-insensitive and accepts a few common aliases.
func ParseFramework(s string) (Framework, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "springboot", "spring-boot", "spring_boot", "spring":
		return FrameworkSpringBoot, nil
	case "nestjs", "nest", "nest.js":
		return FrameworkNestJS, nil
	default:
		return "", fmt.Errorf("%w (got %q)", ErrUnknownFramework, s)
	}
}

// ParseDatabase converts user input to a Database.
func ParseDatabase(s string) (Database, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mysql":
		return DatabaseMySQL, nil
	case "mongodb", "mongo":
		return DatabaseMongoDB, nil
	default:
		return "", fmt.Errorf("%w (got %q)", ErrUnknownDatabase, s)
	}
}

// Selection is the user's choice for a single run.
// It is built once from prompts or flags and is not mutated afterwards.
type Selection struct {
	Framework Framework
	Database  Database
}

// NewSelection parses both values and returns a validated Selection.
func NewSelection(framework, database string) (Selection, error) {
	fw, err := ParseFramework(framework)
	if err != nil {
		return Selection{}, err
	}
	db, err := ParseDatabase(database)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Framework: fw, Database: db}, nil
}

// Validate checks both enum values and that the template tables cover the pair.
func (s Selection) Validate() error {
	if !s.Framework.Valid() {
		return fmt.Errorf("%w (got %q)", ErrUnknownFramework, string(s.Framework))
	}
	if !s.Database.Valid() {
		return fmt.Errorf("%w (got %q)", ErrUnknownDatabase, string(s.Database))
	}
	if slices.Contains(MissingTemplates(), s) {
		return fmt.Errorf("%w: %s", ErrMissingTemplate, s)
	}
	return nil
}

// String returns "framework/database".
func (s Selection) String() string {
	return fmt.Sprintf("%s/%s", s.Framework, s.Database)
}
