package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/maturity-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/maturity-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/maturity-atlas/pkg/services/registry"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	session *commands.Session
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Factory  commands.ServiceFactory
	Registry commands.RegistryLoader
	// RegistryPath is the default of the --registry flag
	RegistryPath string
	Output       io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Registry == nil {
		opts.Registry = registry.NewProfileRegistry
	}

	cli := &CLI{
		session: &commands.Session{
			Factory:  opts.Factory,
			Registry: opts.Registry,
			Reporter: export.NewReporter(opts.Output),
		},
	}

	cli.rootCmd = cli.newRootCmd(opts)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// ExecuteContext runs the CLI with ctx, which carries the logger used by the services.
func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides the command line arguments, used by tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Compliance maturity and gap analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(opts.Output)
	cli.session.Bind(cmd, opts.RegistryPath)

	cmd.AddCommand(commands.NewGapCmd(cli.session))
	cmd.AddCommand(commands.NewSoACmd(cli.session))
	cmd.AddCommand(commands.NewReadinessCmd(cli.session))
	cmd.AddCommand(commands.NewTrendsCmd(cli.session))
	cmd.AddCommand(commands.NewHeatmapCmd(cli.session))
	cmd.AddCommand(commands.NewProfilesCmd(cli.session))

	return cmd
}
