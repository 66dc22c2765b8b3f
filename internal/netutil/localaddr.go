// File: internal/netutil/localaddr.go (complete file)

package netutil

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"go4.org/netipx"
)

// Well-known public resolvers used only to ask the kernel for a route.
var (
	DefaultIPv4ProbeTarget = netip.MustParseAddrPort("8.8.8.8:53")
	DefaultIPv6ProbeTarget = netip.MustParseAddrPort("[2001:4860:4860::8888]:53")
)

// ProbeLocalAddress returns the source address the OS would pick to reach remote.
// The UDP "connect" only resolves the outbound route; no packet is sent.
func ProbeLocalAddress(ctx context.Context, remote netip.AddrPort) (netip.Addr, error) {
	if !remote.IsValid() {
		return netip.Addr{}, fmt.Errorf("invalid probe target %q", remote)
	}

	network := "udp6"
	if remote.Addr().Unmap().Is4() {
		network = "udp4"
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, network, remote.String())
	if err != nil {
		return netip.Addr{}, fmt.Errorf("dial %s %s: %w", network, remote, err)
	}
	defer conn.Close()

	udp, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return netip.Addr{}, fmt.Errorf("unexpected local address type %T", conn.LocalAddr())
	}

	addr, ok := netipx.FromStdIP(udp.IP)
	if !ok {
		return netip.Addr{}, fmt.Errorf("unparseable local address %q", udp.IP)
	}
	return addr, nil
}
