// File: internal/probe/orchestrator.go (complete file)

package probe

import (
	"context"
	"fmt"
	"net/netip"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/baptistax/netdiag/internal/report"
)

// Orchestrator probes one URL: a DNS lookup followed by up to three
// concurrent HTTP attempts (unpinned, first IPv4, first IPv6).
type Orchestrator struct {
	Resolver Resolver
	Prober   Prober
	Logger   *zap.Logger
}

// ValidateURL rejects anything that is not an absolute http(s) URL with a host.
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", rawURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("url %q: scheme must be http or https", rawURL)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("url %q has no host", rawURL)
	}
	return u, nil
}

// PinTargets lists the pins to probe: the unpinned (zero) address first, then
// the first IPv4 and the first IPv6 address found, when present.
func PinTargets(addrs []netip.Addr) []netip.Addr {
	pins := []netip.Addr{{}}

	var v4, v6 netip.Addr
	for _, a := range addrs {
		switch {
		case a.Unmap().Is4():
			if !v4.IsValid() {
				v4 = a.Unmap()
			}
		case a.Is6():
			if !v6.IsValid() {
				v6 = a
			}
		}
	}

	if v4.IsValid() {
		pins = append(pins, v4)
	}
	if v6.IsValid() {
		pins = append(pins, v6)
	}
	return pins
}

// Run never fails on network errors; those end up in the report.
// Only an unusable URL is returned as an error.
func (o *Orchestrator) Run(ctx context.Context, rawURL string) (report.URLReport, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return report.URLReport{}, err
	}

	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rep := report.URLReport{URL: rawURL, Host: u.Hostname()}

	addrs, dnsErr := Resolve(ctx, o.Resolver, rep.Host, logger)
	rep.Addresses = addrs
	rep.DNSError = report.ErrorText(dnsErr)

	pins := PinTargets(addrs)
	results := make([]report.ProbeResult, len(pins))

	var g errgroup.Group
	for i, pin := range pins {
		g.Go(func() error {
			results[i] = o.Prober.Probe(ctx, rawURL, pin)
			return nil
		})
	}
	_ = g.Wait()

	rep.Results = results

	logger.Info("probed url", zap.String("url", rawURL), zap.Int("addresses", len(addrs)), zap.Int("probes", len(results)))

	return rep, nil
}
