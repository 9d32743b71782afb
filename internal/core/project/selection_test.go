package project

import (
	"errors"
	"testing"
)

func TestParseFramework(t *testing.T) {
	tests := []struct {
		input   string
		want    Framework
		wantErr bool
	}{
		{"springboot", FrameworkSpringBoot, false},
		{"SpringBoot", FrameworkSpringBoot, false},
		{"spring-boot", FrameworkSpringBoot, false},
		{" spring ", FrameworkSpringBoot, false},
		{"nestjs", FrameworkNestJS, false},
		{"Nest", FrameworkNestJS, false},
		{"rails", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFramework(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFramework) {
					t.Errorf("ParseFramework(%q) error = %v, want ErrUnknownFramework", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFramework(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFramework(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDatabase(t *testing.T) {
	tests := []struct {
		input   string
		want    Database
		wantErr bool
	}{
		{"mysql", DatabaseMySQL, false},
		{"MySQL", DatabaseMySQL, false},
		{"mongodb", DatabaseMongoDB, false},
		{"mongo", DatabaseMongoDB, false},
		{"postgres", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDatabase(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownDatabase) {
					t.Errorf("ParseDatabase(%q) error = %v, want ErrUnknownDatabase", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDatabase(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDatabase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewSelection(t *testing.T) {
	sel, err := NewSelection("nestjs", "mongo")
	if err != nil {
		t.Fatalf("NewSelection() error = %v", err)
	}
	if sel.Framework != FrameworkNestJS || sel.Database != DatabaseMongoDB {
		t.Errorf("NewSelection() = %+v", sel)
	}
	if sel.String() != "nestjs/mongodb" {
		t.Errorf("String() = %q, want %q", sel.String(), "nestjs/mongodb")
	}

	if _, err := NewSelection("nestjs", "sqlite"); !errors.Is(err, ErrUnknownDatabase) {
		t.Errorf("NewSelection() error = %v, want ErrUnknownDatabase", err)
	}
}

func TestSelection_Validate(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want error
	}{
		{"valid", Selection{FrameworkSpringBoot, DatabaseMySQL}, nil},
		{"bad framework", Selection{"django", DatabaseMySQL}, ErrUnknownFramework},
		{"bad database", Selection{FrameworkNestJS, "redis"}, ErrUnknownDatabase},
		{"zero value", Selection{}, ErrUnknownFramework},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSelection_ValidateMissingTemplate(t *testing.T) {
	saved := nestTemplates[DatabaseMongoDB]
	delete(nestTemplates, DatabaseMongoDB)
	t.Cleanup(func() { nestTemplates[DatabaseMongoDB] = saved })

	err := Selection{FrameworkNestJS, DatabaseMongoDB}.Validate()
	if !errors.Is(err, ErrMissingTemplate) {
		t.Fatalf("Validate() error = %v, want ErrMissingTemplate", err)
	}
	if err := (Selection{FrameworkSpringBoot, DatabaseMongoDB}).Validate(); err != nil {
		t.Errorf("spring table is still complete, Validate() error = %v", err)
	}
}

func TestDisplayNames(t *testing.T) {
	if FrameworkSpringBoot.DisplayName() != "Spring Boot" {
		t.Errorf("DisplayName() = %q", FrameworkSpringBoot.DisplayName())
	}
	if DatabaseMongoDB.DisplayName() != "MongoDB" {
		t.Errorf("DisplayName() = %q", DatabaseMongoDB.DisplayName())
	}
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{OutcomeApplied, "applied"},
		{OutcomeSkippedFileAbsent, "skipped: file absent"},
		{OutcomeSkippedMarkerAbsent, "skipped: marker absent"},
		{Outcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.o, got, tt.want)
		}
	}
	if OutcomeApplied.Skipped() {
		t.Error("OutcomeApplied.Skipped() = true")
	}
}
