// File: internal/app/sweep.go (complete file)

package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/baptistax/netdiag/internal/probe"
	"github.com/baptistax/netdiag/internal/report"
	"github.com/baptistax/netdiag/internal/runctx"
)

type SweepOptions struct {
	Targets      []string
	Format       report.Format
	Out          io.Writer
	SkipSnapshot bool
	SkipProbes   bool

	Network  Network
	Resolver probe.Resolver
	Prober   probe.Prober
	Snapshot SnapshotOptions
}

// RunSweep prints a run header, the network snapshot and then the probe
// results of every target, one target after another. Only a failure to
// enumerate interfaces, an invalid target or cancellation stop it early.
func RunSweep(ctx context.Context, opt SweepOptions, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Format == "" {
		opt.Format = report.FormatJSON
	}
	if opt.Network == nil {
		opt.Network = SystemNetwork{Logger: logger}
	}
	if opt.Resolver == nil {
		opt.Resolver = probe.SystemResolver{}
	}
	if opt.Prober == nil {
		opt.Prober = &probe.HTTPProber{Logger: logger}
	}
	if len(opt.Targets) == 0 {
		opt.Targets = DefaultTargets
	}

	for _, target := range opt.Targets {
		if _, err := probe.ValidateURL(target); err != nil {
			return err
		}
	}

	rc := runctx.New()
	fmt.Fprintln(opt.Out, rc.Header())
	logger.Debug("sweep started", zap.String("run_id", rc.RunID), zap.Int("targets", len(opt.Targets)))

	if !opt.SkipSnapshot {
		s, err := TakeSnapshot(ctx, opt.Network, opt.Snapshot, logger)
		if err != nil {
			return err
		}
		if err := printSnapshot(opt.Out, opt.Format, s); err != nil {
			return err
		}
	}

	if opt.SkipProbes {
		return nil
	}

	orch := &probe.Orchestrator{Resolver: opt.Resolver, Prober: opt.Prober, Logger: logger}

	for _, target := range opt.Targets {
		if err := ctx.Err(); err != nil {
			return err
		}

		rep, err := orch.Run(ctx, target)
		if err != nil {
			return err
		}
		if err := printURLReport(opt.Out, opt.Format, rep); err != nil {
			return err
		}
	}

	return nil
}

func printSnapshot(w io.Writer, format report.Format, s report.NetworkSnapshot) error {
	if format == report.FormatText {
		_, err := io.WriteString(w, report.RenderSnapshotText(s))
		return err
	}
	return report.WriteJSON(w, s)
}

func printURLReport(w io.Writer, format report.Format, rep report.URLReport) error {
	fmt.Fprintln(w)

	if format == report.FormatText {
		_, err := io.WriteString(w, report.RenderURLText(rep))
		return err
	}

	fmt.Fprintf(w, "DNS result: %s\n", rep.Host)
	if rep.DNSError != nil {
		fmt.Fprintf(w, "DNS error: %s\n", *rep.DNSError)
	}
	if err := report.WriteJSON(w, rep.Addresses); err != nil {
		return err
	}

	fmt.Fprintf(w, "Probe results: %s\n", rep.URL)
	return report.WriteJSON(w, rep.Results)
}
