// File: internal/cli/cli.go (complete file)

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/baptistax/netdiag/internal/app"
	"github.com/baptistax/netdiag/internal/logging"
	"github.com/baptistax/netdiag/internal/probe"
	"github.com/baptistax/netdiag/internal/report"
	"github.com/baptistax/netdiag/internal/version"
)

// Run executes the command line and returns the process exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

type commonFlags struct {
	LogLevel   string
	Format     string // json|text
	Nameserver string
}

type stages struct {
	snapshot bool
	probes   bool
}

func NewRootCommand() *cobra.Command {
	c := &commonFlags{}

	root := &cobra.Command{
		Use:   "netdiag [url...]",
		Short: "One-shot network diagnostic sweep",
		Long: `netdiag reports the local outbound IPv4/IPv6 addresses and network interfaces,
then resolves and probes each target URL over the system path and over its
first IPv4 and IPv6 address. Without URLs the built-in targets are probed.`,
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, c, args, stages{snapshot: true, probes: true})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	pf.StringVar(&c.Format, "format", string(report.FormatJSON), "Output format: json|text")
	pf.StringVar(&c.Nameserver, "nameserver", "", "Query this DNS server (host[:port]) directly instead of the system resolver")

	root.AddCommand(
		newSnapshotCommand(c),
		newProbeCommand(c),
		newVersionCommand(),
	)

	return root
}

func newSnapshotCommand(c *commonFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print local addresses and interfaces only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd, c, nil, stages{snapshot: true})
		},
	}
}

func newProbeCommand(c *commonFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <url>...",
		Short: "Resolve and probe the given URLs only",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, c, args, stages{probes: true})
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func runSweep(cmd *cobra.Command, c *commonFlags, targets []string, st stages) error {
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	logger, err := logging.Setup(c.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	var resolver probe.Resolver = probe.SystemResolver{}
	if c.Nameserver != "" {
		r, err := probe.NewDNSResolver(c.Nameserver)
		if err != nil {
			return err
		}
		logger.Debug("using direct dns resolver", zap.String("server", r.Server))
		resolver = r
	}

	return app.RunSweep(cmd.Context(), app.SweepOptions{
		Targets:      targets,
		Format:       format,
		Out:          cmd.OutOrStdout(),
		SkipSnapshot: !st.snapshot,
		SkipProbes:   !st.probes,
		Resolver:     resolver,
	}, logger)
}
