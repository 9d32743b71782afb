package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackinit/stackinit/internal/cli/wizard"
	"github.com/stackinit/stackinit/internal/core/project"
	"github.com/stackinit/stackinit/internal/generator"
	"github.com/stackinit/stackinit/internal/ui"
	"github.com/stackinit/stackinit/pkg/version"
)

// ErrSelectionRequired is returned when a selection is missing and prompting is not possible.
var ErrSelectionRequired = errors.New("framework and database are required")

// runWizard asks the remaining questions. Tests replace it.
var runWizard = wizard.RunWithDefaults

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// validateScaffoldFlags rejects unknown --framework and --database values
// before any work starts.
func validateScaffoldFlags(cmd *cobra.Command, _ []string) error {
	if fw := getStringFlag(cmd, "framework"); fw != "" {
		if _, err := project.ParseFramework(fw); err != nil {
			return fmt.Errorf("invalid --framework value %q: must be one of: springboot, nestjs", fw)
		}
	}
	if db := getStringFlag(cmd, "database"); db != "" {
		if _, err := project.ParseDatabase(db); err != nil {
			return fmt.Errorf("invalid --database value %q: must be one of: mysql, mongodb", db)
		}
	}
	return nil
}

// dependenciesFor returns the preset dependencies or builds them from flags.
func dependenciesFor(cmd *cobra.Command) (*Dependencies, error) {
	if deps != nil {
		return deps, nil
	}
	d, err := InitDependencies(DependencyOptions{
		Debug:      getBoolFlag(cmd, "debug"),
		ConfigPath: getStringFlag(cmd, "config"),
		NoColor:    getBoolFlag(cmd, "no-color"),
	})
	if err != nil {
		return nil, err
	}
	deps = d
	return d, nil
}

// initialAnswers converts the selection flags into pre-filled wizard answers.
func initialAnswers(cmd *cobra.Command) wizard.WizardResult {
	var r wizard.WizardResult
	if fw, err := project.ParseFramework(getStringFlag(cmd, "framework")); err == nil {
		r.Framework = fw.String()
	}
	if db, err := project.ParseDatabase(getStringFlag(cmd, "database")); err == nil {
		r.Database = db.String()
	}
	return r
}

// runScaffold executes select, generate, locate and configure.
func runScaffold(cmd *cobra.Command, _ []string) error {
	d, err := dependenciesFor(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if getBoolFlag(cmd, "write-config") {
		return writeConfig(d, out)
	}

	outputDir := getStringFlag(cmd, "output")
	if outputDir == "" {
		outputDir = d.Config.OutputDir
	}

	// Ctrl-C while a spinner is shown cancels the run the same way SIGINT does.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	_, _ = fmt.Fprintln(out, ui.Banner(d.Theme, "stackinit "+version.GetVersion(), "Spring Boot and NestJS backend scaffolder"))
	_, _ = fmt.Fprintln(out)

	var reporter project.ProgressReporter
	if d.Headless.IsHeadless() || d.Theme.NoColor {
		reporter = project.NewConsoleReporterTo(out)
	} else {
		sr := newSpinnerReporter(ui.NewProgress(d.Theme, d.Headless, out, ui.WithInterrupt(cancel)), d.Theme, out)
		defer sr.Close()
		reporter = sr
	}

	gens, err := generator.Registry(d.Config, d.Runner,
		generator.WithFs(d.Fs),
		generator.WithHTTPClient(d.HTTPClient),
		generator.WithRetryPolicy(generator.PolicyFor(d.Config.Download)),
		generator.WithLogger(d.Logger),
		generator.WithStatus(reporter.StepUpdate),
	)
	if err != nil {
		return err
	}

	pipeline := project.NewPipeline(
		newSelector(d, initialAnswers(cmd), getBoolFlag(cmd, "non-interactive")),
		gens,
		project.NewConfigurator(d.Fs, d.Logger),
		project.WithReporter(reporter),
		project.WithLogger(d.Logger),
		project.WithFs(d.Fs),
	)

	res, err := pipeline.Run(ctx, outputDir)
	if err != nil {
		return err
	}
	return printSummary(out, d.Theme, res)
}

// newSelector answers from flags when both are given and otherwise prompts,
// provided a terminal is attached and prompting is allowed.
func newSelector(d *Dependencies, initial wizard.WizardResult, nonInteractive bool) project.Selector {
	return project.SelectorFunc(func(ctx context.Context) (project.Selection, error) {
		if initial.Framework != "" && initial.Database != "" {
			return initial.Selection()
		}
		if nonInteractive || d.Headless.IsHeadless() {
			return project.Selection{}, fmt.Errorf("%w: pass --framework and --database, or run in a terminal", ErrSelectionRequired)
		}
		result, err := runWizard(ctx, initial)
		if err != nil {
			return project.Selection{}, err
		}
		return result.Selection()
	})
}

func writeConfig(d *Dependencies, out io.Writer) error {
	path := d.Loader.UserConfigPath()
	if err := d.Loader.Save(d.Config, path); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s Configuration written to %s\n", d.Theme.Success.Render("✓"), path)
	return nil
}

// printSummary renders the result card and the next steps.
func printSummary(w io.Writer, theme *ui.Theme, res *project.RunResult) error {
	rows := make([][]string, 0, len(res.Configure.Changes))
	for _, c := range res.Configure.Changes {
		rows = append(rows, []string{relPath(res.ProjectDir, c.Path), c.Outcome.String()})
	}
	table, err := ui.Table([]string{"File", "Result"}, rows)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s project with %s is ready", res.Selection.Framework.DisplayName(), res.Selection.Database.DisplayName())
	details := []string{"Location: " + res.ProjectDir, "", strings.TrimRight(table, "\n")}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, ui.SuccessCard(theme, title, details...))

	if skipped := res.Configure.Skipped(); len(skipped) > 0 {
		lines := make([]string, 0, len(skipped))
		for _, c := range skipped {
			lines = append(lines, fmt.Sprintf("%s: %s", relPath(res.ProjectDir, c.Path), c.Outcome))
		}
		_, _ = fmt.Fprintln(w, ui.Card(theme, "Not changed, wire by hand", theme.Warning.Render(strings.Join(lines, "\n"))))
	}

	md, err := ui.Markdown(theme, nextSteps(res))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(w, md)
	return nil
}

func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// nextSteps returns markdown describing what to do after scaffolding.
func nextSteps(res *project.RunResult) string {
	var b strings.Builder
	b.WriteString("## Next steps\n\n")
	fmt.Fprintf(&b, "1. `cd %s`\n", filepath.ToSlash(res.ProjectDir))

	switch res.Selection.Framework {
	case project.FrameworkSpringBoot:
		fmt.Fprintf(&b, "2. Review the connection settings in `%s`\n", project.SpringConfigFile)
		b.WriteString("3. Start the application with `./mvnw spring-boot:run`\n")
	case project.FrameworkNestJS:
		fmt.Fprintf(&b, "2. Move the appended `%s` call into the `imports` of `AppModule` in `%s`\n",
			nestModuleName(res.Selection.Database), project.NestModuleFile)
		b.WriteString("3. Start the application with `npm run start:dev`\n")
	}

	switch res.Selection.Database {
	case project.DatabaseMySQL:
		b.WriteString("\nMake sure a MySQL server is reachable at `localhost:3306` with a `mydb` database.\n")
	case project.DatabaseMongoDB:
		b.WriteString("\nMake sure MongoDB is reachable at `mongodb://localhost:27017/mydb`.\n")
	}
	return b.String()
}

func nestModuleName(db project.Database) string {
	if db == project.DatabaseMongoDB {
		return "MongooseModule.forRoot"
	}
	return "TypeOrmModule.forRoot"
}
