// File: internal/probe/resolver_test.go (complete file)

package probe

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// startDNSServer serves fixed A/AAAA answers for "dual.test." and "v4.test.",
// an A answer plus an AAAA SERVFAIL for "split.test."; everything else gets NXDOMAIN.
func startDNSServer(t *testing.T) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	mux := dns.NewServeMux()
	mux.HandleFunc(".", func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)

		q := r.Question[0]
		hdr := dns.RR_Header{Name: q.Name, Class: dns.ClassINET, Ttl: 60, Rrtype: q.Qtype}

		switch {
		case q.Name == "dual.test." && q.Qtype == dns.TypeA:
			m.Answer = append(m.Answer, &dns.A{Hdr: hdr, A: net.ParseIP("192.0.2.53")})
		case q.Name == "dual.test." && q.Qtype == dns.TypeAAAA:
			m.Answer = append(m.Answer, &dns.AAAA{Hdr: hdr, AAAA: net.ParseIP("2001:db8::53")})
		case q.Name == "v4.test." && q.Qtype == dns.TypeA:
			m.Answer = append(m.Answer, &dns.A{Hdr: hdr, A: net.ParseIP("192.0.2.54")})
		case q.Name == "v4.test.":
		case q.Name == "split.test." && q.Qtype == dns.TypeA:
			m.Answer = append(m.Answer, &dns.A{Hdr: hdr, A: net.ParseIP("192.0.2.55")})
		case q.Name == "split.test.":
			m.SetRcode(r, dns.RcodeServerFailure)
		default:
			m.SetRcode(r, dns.RcodeNameError)
		}

		_ = w.WriteMsg(m)
	})

	started := make(chan struct{})
	srv := &dns.Server{PacketConn: pc, Handler: mux, NotifyStartedFunc: func() { close(started) }}

	go func() { _ = srv.ActivateAndServe() }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("dns server did not start")
	}

	return pc.LocalAddr().String()
}

func TestDNSResolver_LookupNetIP(t *testing.T) {
	addr := startDNSServer(t)

	r, err := NewDNSResolver(addr)
	require.NoError(t, err)
	r.Timeout = 2 * time.Second

	ctx := context.Background()

	got, err := r.LookupNetIP(ctx, "dual.test")
	require.NoError(t, err)
	assert.Equal(t, []netip.Addr{netip.MustParseAddr("192.0.2.53"), netip.MustParseAddr("2001:db8::53")}, got)

	got, err = r.LookupNetIP(ctx, "v4.test")
	require.NoError(t, err)
	assert.Equal(t, []netip.Addr{netip.MustParseAddr("192.0.2.54")}, got)

	// one family failing is not a lookup failure
	got, err = r.LookupNetIP(ctx, "split.test")
	require.NoError(t, err)
	assert.Equal(t, []netip.Addr{netip.MustParseAddr("192.0.2.55")}, got)

	_, err = r.LookupNetIP(ctx, "missing.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NXDOMAIN")
}

func TestNewDNSResolver_DefaultPort(t *testing.T) {
	r, err := NewDNSResolver("192.0.2.53")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.53:53", r.Server)

	r, err = NewDNSResolver("2001:db8::53")
	require.NoError(t, err)
	assert.Equal(t, "[2001:db8::53]:53", r.Server)

	r, err = NewDNSResolver("[2001:db8::53]")
	require.NoError(t, err)
	assert.Equal(t, "[2001:db8::53]:53", r.Server)

	r, err = NewDNSResolver("192.0.2.53:5353")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.53:5353", r.Server)
}

type staticResolver struct {
	addrs []netip.Addr
	err   error
}

func (s staticResolver) LookupNetIP(context.Context, string) ([]netip.Addr, error) {
	return s.addrs, s.err
}

func TestResolve(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	t.Run("ip literal skips lookup", func(t *testing.T) {
		got, err := Resolve(ctx, staticResolver{err: errors.New("must not be called")}, "::ffff:192.0.2.1", logger)
		require.NoError(t, err)
		assert.Equal(t, []netip.Addr{netip.MustParseAddr("192.0.2.1")}, got)
	})

	t.Run("error yields empty set", func(t *testing.T) {
		got, err := Resolve(ctx, staticResolver{err: errors.New("boom")}, "example.com", logger)
		require.Error(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("nil answer becomes empty", func(t *testing.T) {
		got, err := Resolve(ctx, staticResolver{}, "example.com", logger)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
