// File: internal/netutil/interfaces.go (complete file)

package netutil

import (
	"fmt"
	"net"
	"net/netip"
	"strings"

	"go.uber.org/zap"
	"go4.org/netipx"
)

// InterfaceType is the coarse medium of a network interface.
type InterfaceType int

const (
	InterfaceUnknown InterfaceType = iota
	InterfaceEthernet
	InterfaceWireless80211
	InterfaceLoopback
	InterfaceTunnel
	InterfacePpp
)

func (t InterfaceType) String() string {
	switch t {
	case InterfaceEthernet:
		return "Ethernet"
	case InterfaceWireless80211:
		return "Wireless80211"
	case InterfaceLoopback:
		return "Loopback"
	case InterfaceTunnel:
		return "Tunnel"
	case InterfacePpp:
		return "Ppp"
	default:
		return "Unknown"
	}
}

// MarshalText renders the symbolic name, so JSON never carries the numeric code.
func (t InterfaceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// OperationalStatus mirrors the RFC 2863 operational states.
type OperationalStatus int

const (
	OperStatusUnknown OperationalStatus = iota
	OperStatusUp
	OperStatusDown
	OperStatusTesting
	OperStatusDormant
	OperStatusNotPresent
	OperStatusLowerLayerDown
)

func (s OperationalStatus) String() string {
	switch s {
	case OperStatusUp:
		return "Up"
	case OperStatusDown:
		return "Down"
	case OperStatusTesting:
		return "Testing"
	case OperStatusDormant:
		return "Dormant"
	case OperStatusNotPresent:
		return "NotPresent"
	case OperStatusLowerLayerDown:
		return "LowerLayerDown"
	default:
		return "Unknown"
	}
}

func (s OperationalStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SpeedUnknown is reported when the link speed cannot be read.
const SpeedUnknown int64 = -1

// Interface is a raw view of one OS network interface.
// Addresses are exactly as bound; nothing here is masked.
type Interface struct {
	Index             int
	Name              string
	Description       string
	Type              InterfaceType
	OperationalStatus OperationalStatus
	SpeedBps          int64
	Addresses         []netip.Addr
}

// Interfaces lists every network interface known to the OS together with its
// unicast addresses. Failing to list interfaces or their addresses is returned
// as an error; platform enrichment failures only degrade the metadata.
func Interfaces(logger *zap.Logger) ([]Interface, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	out := make([]Interface, 0, len(ifaces))
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			return nil, fmt.Errorf("list addresses of %q: %w", iface.Name, err)
		}

		ni := fromStdInterface(iface)
		ni.Addresses = unicastAddrs(addrs)
		out = append(out, ni)
	}

	enrichInterfaces(out, logger)

	return out, nil
}

// fromStdInterface derives what it can from the portable flags.
func fromStdInterface(iface net.Interface) Interface {
	ni := Interface{
		Index:       iface.Index,
		Name:        iface.Name,
		Description: iface.Name,
		SpeedBps:    SpeedUnknown,
	}

	switch {
	case iface.Flags&net.FlagLoopback != 0:
		ni.Type = InterfaceLoopback
	case iface.Flags&net.FlagPointToPoint != 0:
		ni.Type = InterfacePpp
	case looksWireless(iface.Name):
		ni.Type = InterfaceWireless80211
	case len(iface.HardwareAddr) == 6:
		ni.Type = InterfaceEthernet
	}

	// Admin-up without a running lower layer (no carrier) is down, as the
	// kernel's own operstate reports it.
	switch {
	case iface.Flags&net.FlagUp == 0:
		ni.OperationalStatus = OperStatusDown
	case iface.Flags&net.FlagRunning != 0:
		ni.OperationalStatus = OperStatusUp
	default:
		ni.OperationalStatus = OperStatusDown
	}

	return ni
}

func looksWireless(name string) bool {
	for _, prefix := range []string{"wl", "wifi"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func unicastAddrs(addrs []net.Addr) []netip.Addr {
	out := make([]netip.Addr, 0, len(addrs))
	for _, a := range addrs {
		var (
			ip netip.Addr
			ok bool
		)
		switch v := a.(type) {
		case *net.IPNet:
			ip, ok = netipx.FromStdIP(v.IP)
		case *net.IPAddr:
			ip, ok = netipx.FromStdIP(v.IP)
			if ok && v.Zone != "" {
				ip = ip.WithZone(v.Zone)
			}
		}
		if !ok || ip.IsMulticast() {
			continue
		}
		out = append(out, ip)
	}
	return out
}

// HasAddress reports whether addr is bound to the interface.
// Zones are ignored, the probe never reports one.
func (ni Interface) HasAddress(addr netip.Addr) bool {
	if !addr.IsValid() {
		return false
	}
	want := addr.WithZone("")
	for _, a := range ni.Addresses {
		if a.WithZone("") == want {
			return true
		}
	}
	return false
}
