// File: internal/app/snapshot.go (complete file)

package app

import (
	"context"
	"fmt"
	"net/netip"

	"go.uber.org/zap"

	"github.com/baptistax/netdiag/internal/netutil"
	"github.com/baptistax/netdiag/internal/report"
)

// Network is where a snapshot reads host state from.
type Network interface {
	LocalAddress(ctx context.Context, remote netip.AddrPort) (netip.Addr, error)
	Interfaces() ([]netutil.Interface, error)
}

// SystemNetwork reads the real host.
type SystemNetwork struct {
	Logger *zap.Logger
}

func (n SystemNetwork) LocalAddress(ctx context.Context, remote netip.AddrPort) (netip.Addr, error) {
	return netutil.ProbeLocalAddress(ctx, remote)
}

func (n SystemNetwork) Interfaces() ([]netutil.Interface, error) {
	return netutil.Interfaces(n.Logger)
}

type SnapshotOptions struct {
	IPv4Target netip.AddrPort
	IPv6Target netip.AddrPort
}

// TakeSnapshot probes the local v4/v6 source addresses and enumerates the
// interfaces. Probe failures only mean "no address"; an enumeration failure is
// returned because there is no useful snapshot without it.
func TakeSnapshot(ctx context.Context, n Network, opt SnapshotOptions, logger *zap.Logger) (report.NetworkSnapshot, error) {
	if !opt.IPv4Target.IsValid() {
		opt.IPv4Target = netutil.DefaultIPv4ProbeTarget
	}
	if !opt.IPv6Target.IsValid() {
		opt.IPv6Target = netutil.DefaultIPv6ProbeTarget
	}

	localV4 := probeLocal(ctx, n, opt.IPv4Target, logger)
	localV6 := probeLocal(ctx, n, opt.IPv6Target, logger)

	ifaces, err := n.Interfaces()
	if err != nil {
		return report.NetworkSnapshot{}, fmt.Errorf("enumerate interfaces: %w", err)
	}

	return BuildSnapshot(localV4, localV6, ifaces), nil
}

func probeLocal(ctx context.Context, n Network, target netip.AddrPort, logger *zap.Logger) netip.Addr {
	addr, err := n.LocalAddress(ctx, target)
	if err != nil {
		logger.Debug("no local address for target", zap.Stringer("target", target), zap.Error(err))
		return netip.Addr{}
	}
	return addr
}

// BuildSnapshot marks default-route interfaces by comparing the raw local
// addresses against each interface's raw addresses, and only then masks every
// address for output.
func BuildSnapshot(localV4, localV6 netip.Addr, ifaces []netutil.Interface) report.NetworkSnapshot {
	s := report.NetworkSnapshot{
		IsIPv6Enabled: localV6.IsValid(),
		Interfaces:    make([]report.InterfaceInfo, 0, len(ifaces)),
	}

	for _, ni := range ifaces {
		wireless := ni.Type == netutil.InterfaceWireless80211
		if wireless {
			s.IsWifiEnabled = true
		}

		info := report.InterfaceInfo{
			Name:              ni.Name,
			Description:       ni.Description,
			Type:              ni.Type,
			OperationalStatus: ni.OperationalStatus,
			SpeedBps:          ni.SpeedBps,
		}

		if ni.HasAddress(localV4) {
			info.Flags.DefaultIPv4 = true
			if wireless {
				s.IsWifiUsed = true
			}
		}
		if ni.HasAddress(localV6) {
			info.Flags.DefaultIPv6 = true
			if wireless {
				s.IsWifiUsed = true
			}
		}

		s.Interfaces = append(s.Interfaces, info)
	}

	// Detection is complete; nothing raw may leave this function.
	for i, ni := range ifaces {
		s.Interfaces[i].Addresses = netutil.MaskAllForLogging(ni.Addresses)
	}
	s.LocalIPv4 = report.AddrPtr(netutil.MaskForLogging(localV4))
	s.LocalIPv6 = report.AddrPtr(netutil.MaskForLogging(localV6))

	return s
}
