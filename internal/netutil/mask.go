// File: internal/netutil/mask.go (complete file)

package netutil

import "net/netip"

// MaskForLogging zeroes the host-identifying part of addr so it can be printed.
// IPv4 keeps its /24, IPv4-mapped IPv6 keeps everything but the last byte and
// any other IPv6 address keeps its /64. An invalid (absent) addr is returned as is.
func MaskForLogging(addr netip.Addr) netip.Addr {
	switch {
	case !addr.IsValid():
		return addr
	case addr.Is4():
		b := addr.As4()
		b[3] = 0
		return netip.AddrFrom4(b)
	case addr.Is4In6():
		b := addr.As16()
		b[15] = 0
		return netip.AddrFrom16(b).WithZone(addr.Zone())
	default:
		b := addr.As16()
		for i := 8; i < 16; i++ {
			b[i] = 0
		}
		return netip.AddrFrom16(b).WithZone(addr.Zone())
	}
}

// MaskAllForLogging returns a new slice with every address masked.
func MaskAllForLogging(addrs []netip.Addr) []netip.Addr {
	out := make([]netip.Addr, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, MaskForLogging(a))
	}
	return out
}

// IsMasked reports whether addr already has its host part zeroed.
func IsMasked(addr netip.Addr) bool {
	return MaskForLogging(addr) == addr
}
