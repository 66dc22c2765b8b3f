// File: internal/netutil/mask_test.go (complete file)

package netutil

import (
	"math/rand"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskForLogging_Table(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"192.168.1.77", "192.168.1.0"},
		{"10.0.0.0", "10.0.0.0"},
		{"255.255.255.255", "255.255.255.0"},
		{"::ffff:192.168.1.77", "::ffff:192.168.1.0"},
		{"2001:db8:1:2:3:4:5:6", "2001:db8:1:2::"},
		{"fe80::1234:5678:9abc:def0", "fe80::"},
		{"::1", "::"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got := MaskForLogging(netip.MustParseAddr(tc.in))
			assert.Equal(t, netip.MustParseAddr(tc.want), got)
		})
	}
}

func TestMaskForLogging_Absent(t *testing.T) {
	got := MaskForLogging(netip.Addr{})
	assert.False(t, got.IsValid())
}

func TestMaskForLogging_IPv4Property(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for range 1000 {
		var b [4]byte
		rng.Read(b[:])
		a := netip.AddrFrom4(b)

		m := MaskForLogging(a)
		require.True(t, m.Is4())

		mb := m.As4()
		assert.Equal(t, b[:3], mb[:3])
		assert.Zero(t, mb[3])
		assert.Equal(t, m, MaskForLogging(m), "mask must be idempotent")
	}
}

func TestMaskForLogging_IPv6Property(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for range 1000 {
		var b [16]byte
		rng.Read(b[:])
		if b[0] == 0 {
			b[0] = 0x20 // keep it clear of the IPv4-mapped range
		}
		a := netip.AddrFrom16(b)
		require.False(t, a.Is4In6())

		m := MaskForLogging(a)
		mb := m.As16()
		assert.Equal(t, b[:8], mb[:8])
		assert.Equal(t, make([]byte, 8), mb[8:])
		assert.Equal(t, m, MaskForLogging(m))
	}
}

func TestMaskForLogging_IPv4MappedProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for range 1000 {
		var v4 [4]byte
		rng.Read(v4[:])
		a := netip.AddrFrom16(netip.AddrFrom4(v4).As16())
		require.True(t, a.Is4In6())

		m := MaskForLogging(a)
		require.True(t, m.Is4In6(), "mapped addresses stay mapped")

		ab, mb := a.As16(), m.As16()
		assert.Equal(t, ab[:15], mb[:15])
		assert.Zero(t, mb[15])
		assert.Equal(t, m, MaskForLogging(m))
	}
}

func TestMaskAllForLogging_DoesNotMutateInput(t *testing.T) {
	in := []netip.Addr{netip.MustParseAddr("192.0.2.10"), netip.MustParseAddr("2001:db8::10")}
	out := MaskAllForLogging(in)

	assert.Equal(t, netip.MustParseAddr("192.0.2.10"), in[0])
	assert.Equal(t, netip.MustParseAddr("192.0.2.0"), out[0])
	assert.Equal(t, netip.MustParseAddr("2001:db8::"), out[1])
	assert.True(t, IsMasked(out[0]))
	assert.False(t, IsMasked(in[0]))
}
