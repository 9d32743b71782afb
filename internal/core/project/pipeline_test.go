package project

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// --- Mock implementations for testing ---

type mockGenerator struct {
	fs       afero.Fs
	dirName  string
	files    map[string]string // relative path -> content, written on Generate
	err      error
	skipDir  bool
	calls    int
	gotDB    Database
	gotOut   string
	returnFn func(outputDir string) string
}

func (m *mockGenerator) Generate(_ context.Context, outputDir string, db Database) (string, error) {
	m.calls++
	m.gotDB = db
	m.gotOut = outputDir
	if m.err != nil {
		return "", m.err
	}
	dir := filepath.Join(outputDir, m.dirName)
	if !m.skipDir {
		_ = m.fs.MkdirAll(dir, 0o755)
		for rel, content := range m.files {
			p := filepath.Join(dir, filepath.FromSlash(rel))
			_ = m.fs.MkdirAll(filepath.Dir(p), 0o755)
			_ = afero.WriteFile(m.fs, p, []byte(content), 0o644)
		}
	}
	if m.returnFn != nil {
		return m.returnFn(outputDir), nil
	}
	return dir, nil
}

func (m *mockGenerator) ProjectDirName() string { return m.dirName }

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) StepStart(name, _ string) { r.events = append(r.events, "start:"+name) }
func (r *recordingReporter) StepUpdate(string)        {}
func (r *recordingReporter) StepComplete(string)      { r.events = append(r.events, "done") }
func (r *recordingReporter) StepError(error)          { r.events = append(r.events, "error") }

func newTestPipeline(fsys afero.Fs, sel Selection, gens map[Framework]Generator, rep ProgressReporter) *Pipeline {
	return NewPipeline(
		StaticSelector(sel),
		gens,
		NewConfigurator(fsys, nil),
		WithFs(fsys),
		WithReporter(rep),
	)
}

// --- Pipeline tests ---

func TestPipeline_SpringBootMySQL(t *testing.T) {
	fsys := afero.NewMemMapFs()
	gen := &mockGenerator{fs: fsys, dirName: "spring-boot-project", files: map[string]string{"pom.xml": samplePOM}}
	rep := &recordingReporter{}

	p := newTestPipeline(fsys, Selection{FrameworkSpringBoot, DatabaseMySQL},
		map[Framework]Generator{FrameworkSpringBoot: gen}, rep)

	result, err := p.Run(context.Background(), "/out")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if gen.calls != 1 || gen.gotDB != DatabaseMySQL || gen.gotOut != "/out" {
		t.Errorf("generator called %d times with db=%q out=%q", gen.calls, gen.gotDB, gen.gotOut)
	}
	if result.ProjectDir != filepath.Join("/out", "spring-boot-project") {
		t.Errorf("ProjectDir = %q", result.ProjectDir)
	}
	if len(result.Configure.Applied()) != 2 {
		t.Errorf("applied = %v", result.Configure.Applied())
	}

	want := []string{
		"start:" + StageSelect, "done",
		"start:" + StageGenerate, "done",
		"start:" + StageLocate, "done",
		"start:" + StageConfigure, "done",
	}
	if strings.Join(rep.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", rep.events, want)
	}
}

func TestPipeline_NestJSMongoDB(t *testing.T) {
	fsys := afero.NewMemMapFs()
	gen := &mockGenerator{fs: fsys, dirName: "nestjs-project", files: map[string]string{"src/app.module.ts": sampleModule}}

	p := newTestPipeline(fsys, Selection{FrameworkNestJS, DatabaseMongoDB},
		map[Framework]Generator{FrameworkNestJS: gen}, nil)

	result, err := p.Run(context.Background(), "/out")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, _ := afero.ReadFile(fsys, filepath.Join(result.ProjectDir, "src", "app.module.ts"))
	if !strings.HasSuffix(strings.TrimRight(string(got), "\n"), "MongooseModule.forRoot('mongodb://localhost:27017/mydb')") {
		t.Errorf("app.module.ts = %s", got)
	}
}

func TestPipeline_GeneratorFailureStopsRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	genErr := errors.New("exit status 1")
	gen := &mockGenerator{fs: fsys, dirName: "nestjs-project", err: genErr}
	rep := &recordingReporter{}

	p := newTestPipeline(fsys, Selection{FrameworkNestJS, DatabaseMySQL},
		map[Framework]Generator{FrameworkNestJS: gen}, rep)

	_, err := p.Run(context.Background(), "/out")
	if !errors.Is(err, ErrGenerateFailed) || !errors.Is(err, genErr) {
		t.Errorf("error = %v, want ErrGenerateFailed wrapping generator error", err)
	}
	for _, e := range rep.events {
		if e == "start:"+StageLocate || e == "start:"+StageConfigure {
			t.Errorf("stage %s ran after generator failure", e)
		}
	}
}

func TestPipeline_MissingProjectDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	gen := &mockGenerator{fs: fsys, dirName: "spring-boot-project", skipDir: true}

	p := newTestPipeline(fsys, Selection{FrameworkSpringBoot, DatabaseMongoDB},
		map[Framework]Generator{FrameworkSpringBoot: gen}, nil)

	_, err := p.Run(context.Background(), "/out")
	if !errors.Is(err, ErrProjectMissing) {
		t.Errorf("error = %v, want ErrProjectMissing", err)
	}
}

func TestPipeline_EmptyProjectDirFallsBackToDirName(t *testing.T) {
	fsys := afero.NewMemMapFs()
	gen := &mockGenerator{
		fs:       fsys,
		dirName:  "nestjs-project",
		files:    map[string]string{"src/app.module.ts": sampleModule},
		returnFn: func(string) string { return "" },
	}

	p := newTestPipeline(fsys, Selection{FrameworkNestJS, DatabaseMySQL},
		map[Framework]Generator{FrameworkNestJS: gen}, nil)

	result, err := p.Run(context.Background(), "/out")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.ProjectDir != filepath.Join("/out", "nestjs-project") {
		t.Errorf("ProjectDir = %q", result.ProjectDir)
	}
}

func TestPipeline_SelectorError(t *testing.T) {
	selErr := errors.New("cancelled")
	gen := &mockGenerator{fs: afero.NewMemMapFs(), dirName: "x"}
	p := NewPipeline(
		SelectorFunc(func(context.Context) (Selection, error) { return Selection{}, selErr }),
		map[Framework]Generator{FrameworkNestJS: gen},
		NewConfigurator(afero.NewMemMapFs(), nil),
	)

	_, err := p.Run(context.Background(), ".")
	if !errors.Is(err, selErr) {
		t.Errorf("error = %v, want selector error", err)
	}
	if gen.calls != 0 {
		t.Error("generator ran after selector failure")
	}
}

func TestPipeline_NoGeneratorRegistered(t *testing.T) {
	p := NewPipeline(
		StaticSelector(Selection{FrameworkSpringBoot, DatabaseMySQL}),
		map[Framework]Generator{},
		NewConfigurator(afero.NewMemMapFs(), nil),
	)

	_, err := p.Run(context.Background(), ".")
	if !errors.Is(err, ErrUnknownFramework) {
		t.Errorf("error = %v, want ErrUnknownFramework", err)
	}
}

func TestPipeline_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &mockGenerator{fs: afero.NewMemMapFs(), dirName: "x"}
	p := newTestPipeline(afero.NewMemMapFs(), Selection{FrameworkNestJS, DatabaseMySQL},
		map[Framework]Generator{FrameworkNestJS: gen}, nil)

	if _, err := p.Run(ctx, "."); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRequireProjectDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	_ = fsys.MkdirAll("/p/dir", 0o755)
	_ = afero.WriteFile(fsys, "/p/file", []byte("x"), 0o644)

	if err := RequireProjectDir(fsys, "/p/dir"); err != nil {
		t.Errorf("RequireProjectDir(dir) error = %v", err)
	}
	if err := RequireProjectDir(fsys, "/p/file"); !errors.Is(err, ErrProjectMissing) {
		t.Errorf("RequireProjectDir(file) error = %v, want ErrProjectMissing", err)
	}
	if err := RequireProjectDir(fsys, "/p/none"); !errors.Is(err, ErrProjectMissing) {
		t.Errorf("RequireProjectDir(none) error = %v, want ErrProjectMissing", err)
	}
}

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporterTo(&buf)
	r.StepStart("Generate", "Generating NestJS project")
	r.StepUpdate("installing packages")
	r.StepError(errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"Generate: Generating NestJS project", "installing packages", "x Generate: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q lacks %q", out, want)
		}
	}
}
