package project

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const samplePOM = `<?xml version="1.0" encoding="UTF-8"?>
<project>
	<modelVersion>4.0.0</modelVersion>
	<artifactId>demo</artifactId>
	<dependencies>
		<dependency>
			<groupId>org.springframework.boot</groupId>
			<artifactId>spring-boot-starter-web</artifactId>
		</dependency>
	</dependencies>
	<build>
		<plugins>
			<plugin>
				<groupId>org.springframework.boot</groupId>
				<artifactId>spring-boot-maven-plugin</artifactId>
			</plugin>
		</plugins>
	</build>
</project>
`

const sampleModule = `import { Module } from '@nestjs/common';
import { AppController } from './app.controller';
import { AppService } from './app.service';

@Module({
  imports: [],
  controllers: [AppController],
  providers: [AppService],
})
export class AppModule {}
`

const root = "/work/spring-boot-project"

// --- helpers ---

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func fileExists(fsys afero.Fs, path string) bool {
	ok, _ := afero.Exists(fsys, path)
	return ok
}

func manifestPath(root string) string { return filepath.Join(root, SpringManifestFile) }
func configPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(SpringConfigFile))
}
func modulePath(root string) string {
	return filepath.Join(root, filepath.FromSlash(NestModuleFile))
}

// --- Spring Boot ---

func TestConfigureSpringBoot_InsertsBeforeMarker(t *testing.T) {
	for _, db := range Databases {
		t.Run(db.String(), func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			writeFile(t, fsys, manifestPath(root), samplePOM)

			c := NewConfigurator(fsys, nil)
			changes, err := c.ConfigureSpringBoot(root, db)
			if err != nil {
				t.Fatalf("ConfigureSpringBoot() error = %v", err)
			}
			if len(changes) != 2 {
				t.Fatalf("len(changes) = %d, want 2", len(changes))
			}
			if changes[0].Outcome != OutcomeApplied {
				t.Errorf("manifest outcome = %v, want %v", changes[0].Outcome, OutcomeApplied)
			}

			tmpl, _ := SpringTemplateFor(db)
			idx := strings.Index(samplePOM, ManifestMarker)
			want := samplePOM[:idx] + tmpl.Dependency + samplePOM[idx:]

			got := readFile(t, fsys, manifestPath(root))
			if got != want {
				t.Errorf("manifest mismatch\ngot:\n%s\nwant:\n%s", got, want)
			}
			if strings.Count(got, ManifestMarker) != 1 {
				t.Errorf("marker count = %d, want 1", strings.Count(got, ManifestMarker))
			}
		})
	}
}

func TestConfigureSpringBoot_MarkerAbsentLeavesManifestUnchanged(t *testing.T) {
	original := strings.ReplaceAll(samplePOM, ManifestMarker, "</deps>")

	for _, db := range Databases {
		t.Run(db.String(), func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			writeFile(t, fsys, manifestPath(root), original)

			c := NewConfigurator(fsys, nil)
			changes, err := c.ConfigureSpringBoot(root, db)
			if err != nil {
				t.Fatalf("ConfigureSpringBoot() error = %v", err)
			}
			if changes[0].Outcome != OutcomeSkippedMarkerAbsent {
				t.Errorf("manifest outcome = %v, want %v", changes[0].Outcome, OutcomeSkippedMarkerAbsent)
			}
			if got := readFile(t, fsys, manifestPath(root)); got != original {
				t.Error("manifest changed although marker is absent")
			}
		})
	}
}

func TestConfigureSpringBoot_ManifestAbsentIsNoOp(t *testing.T) {
	for _, db := range Databases {
		t.Run(db.String(), func(t *testing.T) {
			base := afero.NewMemMapFs()
			if err := base.MkdirAll(root, 0o755); err != nil {
				t.Fatal(err)
			}
			// Any write through a read-only view fails, so a nil error proves
			// nothing was written.
			fsys := afero.NewReadOnlyFs(base)

			c := NewConfigurator(fsys, nil)
			changes, err := c.ConfigureSpringBoot(root, db)
			if err != nil {
				t.Fatalf("ConfigureSpringBoot() error = %v", err)
			}
			if len(changes) != 1 || changes[0].Outcome != OutcomeSkippedFileAbsent {
				t.Errorf("changes = %+v, want single skipped-file-absent", changes)
			}
			if fileExists(base, configPath(root)) {
				t.Error("application.yml was written although pom.xml is absent")
			}
		})
	}
}

func TestConfigureSpringBoot_OverwritesApplicationYAML(t *testing.T) {
	priors := map[string]string{
		"empty":    "",
		"existing": "server:\n  port: 9090\nspring:\n  application:\n    name: demo\n",
	}

	for _, db := range Databases {
		for name, prior := range priors {
			t.Run(db.String()+"/"+name, func(t *testing.T) {
				fsys := afero.NewMemMapFs()
				writeFile(t, fsys, manifestPath(root), samplePOM)
				writeFile(t, fsys, configPath(root), prior)

				c := NewConfigurator(fsys, nil)
				if _, err := c.ConfigureSpringBoot(root, db); err != nil {
					t.Fatalf("ConfigureSpringBoot() error = %v", err)
				}

				tmpl, _ := SpringTemplateFor(db)
				if got := readFile(t, fsys, configPath(root)); got != tmpl.ApplicationYAML {
					t.Errorf("application.yml = %q, want %q", got, tmpl.ApplicationYAML)
				}
			})
		}
	}
}

func TestConfigureSpringBoot_CreatesResourcesDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, manifestPath(root), samplePOM)

	c := NewConfigurator(fsys, nil)
	changes, err := c.ConfigureSpringBoot(root, DatabaseMongoDB)
	if err != nil {
		t.Fatalf("ConfigureSpringBoot() error = %v", err)
	}
	if changes[1].Outcome != OutcomeApplied {
		t.Errorf("config outcome = %v, want %v", changes[1].Outcome, OutcomeApplied)
	}
	if !fileExists(fsys, configPath(root)) {
		t.Error("application.yml was not created")
	}
}

func TestConfigureSpringBoot_MarkerAbsentStillWritesConfig(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, manifestPath(root), "<project></project>\n")

	c := NewConfigurator(fsys, nil)
	changes, err := c.ConfigureSpringBoot(root, DatabaseMySQL)
	if err != nil {
		t.Fatalf("ConfigureSpringBoot() error = %v", err)
	}
	if changes[1].Outcome != OutcomeApplied {
		t.Errorf("config outcome = %v, want %v", changes[1].Outcome, OutcomeApplied)
	}
}

func TestConfigureSpringBoot_UnknownDatabase(t *testing.T) {
	c := NewConfigurator(afero.NewMemMapFs(), nil)
	_, err := c.ConfigureSpringBoot(root, Database("postgres"))
	if !errors.Is(err, ErrUnknownDatabase) {
		t.Errorf("error = %v, want ErrUnknownDatabase", err)
	}
}

func TestConfigureSpringBoot_WriteFailureIsReported(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, manifestPath(root), samplePOM)

	c := NewConfigurator(afero.NewReadOnlyFs(base), nil)
	_, err := c.ConfigureSpringBoot(root, DatabaseMySQL)
	if !errors.Is(err, ErrConfigureFailed) {
		t.Errorf("error = %v, want ErrConfigureFailed", err)
	}
}

// --- NestJS ---

func TestConfigureNestJS_AppendsSnippet(t *testing.T) {
	nestRoot := "/work/nestjs-project"

	for _, db := range Databases {
		t.Run(db.String(), func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			writeFile(t, fsys, modulePath(nestRoot), sampleModule)

			c := NewConfigurator(fsys, nil)
			change, err := c.ConfigureNestJS(nestRoot, db)
			if err != nil {
				t.Fatalf("ConfigureNestJS() error = %v", err)
			}
			if change.Outcome != OutcomeApplied {
				t.Errorf("outcome = %v, want %v", change.Outcome, OutcomeApplied)
			}

			tmpl, _ := NestTemplateFor(db)
			got := readFile(t, fsys, modulePath(nestRoot))
			if len(got) != len(sampleModule)+len(tmpl.ModuleSnippet) {
				t.Errorf("len = %d, want %d", len(got), len(sampleModule)+len(tmpl.ModuleSnippet))
			}
			if got != sampleModule+tmpl.ModuleSnippet {
				t.Errorf("module content mismatch:\n%s", got)
			}
		})
	}
}

func TestConfigureNestJS_ModuleAbsent(t *testing.T) {
	fsys := afero.NewMemMapFs()

	c := NewConfigurator(fsys, nil)
	change, err := c.ConfigureNestJS("/work/nestjs-project", DatabaseMySQL)
	if err != nil {
		t.Fatalf("ConfigureNestJS() error = %v", err)
	}
	if change.Outcome != OutcomeSkippedFileAbsent {
		t.Errorf("outcome = %v, want %v", change.Outcome, OutcomeSkippedFileAbsent)
	}
	if fileExists(fsys, modulePath("/work/nestjs-project")) {
		t.Error("module file was created")
	}
}

// --- End-to-end scenarios through Configure ---

func TestConfigure_SpringBootMySQL(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, manifestPath(root), samplePOM)

	c := NewConfigurator(fsys, nil)
	sel := Selection{Framework: FrameworkSpringBoot, Database: DatabaseMySQL}
	result, err := c.Configure(context.Background(), sel, root)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if len(result.Applied()) != 2 {
		t.Errorf("applied = %v, want 2 files", result.Applied())
	}

	got := readFile(t, fsys, manifestPath(root))
	if !strings.Contains(got, "mysql-connector-java") {
		t.Error("manifest does not mention mysql-connector-java")
	}
	if strings.Count(got, ManifestMarker) != 1 {
		t.Errorf("marker count = %d, want 1", strings.Count(got, ManifestMarker))
	}
	tmpl, _ := SpringTemplateFor(DatabaseMySQL)
	if !strings.Contains(got, tmpl.Dependency+ManifestMarker) {
		t.Error("marker is not directly preceded by the inserted block")
	}
}

func TestConfigure_NestJSMongoDB(t *testing.T) {
	nestRoot := "/work/nestjs-project"
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, modulePath(nestRoot), sampleModule)

	c := NewConfigurator(fsys, nil)
	sel := Selection{Framework: FrameworkNestJS, Database: DatabaseMongoDB}
	if _, err := c.Configure(context.Background(), sel, nestRoot); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	got := strings.TrimRight(readFile(t, fsys, modulePath(nestRoot)), "\n")
	if !strings.HasSuffix(got, "MongooseModule.forRoot('mongodb://localhost:27017/mydb')") {
		t.Errorf("module does not end with the Mongoose snippet:\n%s", got)
	}
}

func TestConfigure_InvalidSelection(t *testing.T) {
	c := NewConfigurator(afero.NewMemMapFs(), nil)
	_, err := c.Configure(context.Background(), Selection{Framework: "rails", Database: DatabaseMySQL}, root)
	if !errors.Is(err, ErrUnknownFramework) {
		t.Errorf("error = %v, want ErrUnknownFramework", err)
	}
}

func TestConfigure_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewConfigurator(afero.NewMemMapFs(), nil)
	_, err := c.Configure(ctx, Selection{Framework: FrameworkNestJS, Database: DatabaseMySQL}, root)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestConfigure_OnDisk(t *testing.T) {
	dir := t.TempDir()
	fsys := afero.NewOsFs()
	writeFile(t, fsys, manifestPath(dir), samplePOM)

	c := NewConfigurator(nil, nil)
	sel := Selection{Framework: FrameworkSpringBoot, Database: DatabaseMongoDB}
	result, err := c.Configure(context.Background(), sel, dir)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if len(result.Skipped()) != 0 {
		t.Errorf("skipped = %+v, want none", result.Skipped())
	}
	if !strings.Contains(readFile(t, fsys, manifestPath(dir)), "spring-boot-starter-data-mongodb") {
		t.Error("mongodb starter not inserted")
	}
}
