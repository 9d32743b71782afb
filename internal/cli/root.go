package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stackinit/stackinit/internal/cli/wizard"
	"github.com/stackinit/stackinit/pkg/version"
)

// cancelledMessage is printed when the user aborts a prompt or interrupts a run.
const cancelledMessage = "Scaffolding cancelled."

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stackinit",
		Short: "Scaffold a Spring Boot or NestJS backend wired to MySQL or MongoDB",
		Long: `stackinit creates a backend project skeleton with the framework's own
generator and then wires in database dependencies and connection settings.

Spring Boot projects are downloaded from Spring Initializr into
./spring-boot-project; NestJS projects are created with the Nest CLI in
./nestjs-project.

Examples:
  stackinit                                  Ask for framework and database
  stackinit --framework nestjs --database mongodb
  stackinit -f spring -d mysql -o ~/code     Generate under ~/code
  stackinit --write-config                   Save the effective configuration`,
		Args:          cobra.NoArgs,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE:       validateScaffoldFlags,
		RunE:          runScaffold,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("stackinit %s\n", version.GetVersion()))

	flags := cmd.Flags()
	flags.StringP("framework", "f", "", "Framework to scaffold: springboot or nestjs")
	flags.StringP("database", "d", "", "Database to wire: mysql or mongodb")
	flags.StringP("output", "o", "", "Directory the project is created in (default: output_dir from config, \".\")")
	flags.Bool("non-interactive", false, "Never prompt; fail when --framework or --database is missing")
	flags.Bool("write-config", false, "Write the effective configuration to the user config file and exit")
	flags.String("config", "", "Config file (default: .stackinit.yaml in ., $HOME or $HOME/.config/stackinit)")
	flags.Bool("debug", false, "Log debug output to stderr")
	flags.Bool("no-color", false, "Disable colored output and animations")

	return cmd
}

// Execute runs the root command and prints the final error once.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

// printError reports err on w. Cancellation gets a short notice instead of
// the full error chain.
func printError(w io.Writer, err error) {
	if isCancelled(err) {
		_, _ = color.New(color.FgYellow).Fprintln(w, cancelledMessage)
		return
	}
	_, _ = color.New(color.FgRed, color.Bold).Fprintf(w, "Error: %v\n", err)
}

func isCancelled(err error) bool {
	return errors.Is(err, wizard.ErrCancelled) || errors.Is(err, context.Canceled)
}
