// File: internal/probe/resolver.go (complete file)

package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/zap"
	"go4.org/netipx"
	"golang.org/x/sync/errgroup"
)

// Resolver turns a hostname into its addresses.
type Resolver interface {
	LookupNetIP(ctx context.Context, host string) ([]netip.Addr, error)
}

// SystemResolver asks the OS resolver (the default path for every sweep).
type SystemResolver struct {
	Resolver *net.Resolver
}

func (r SystemResolver) LookupNetIP(ctx context.Context, host string) ([]netip.Addr, error) {
	res := r.Resolver
	if res == nil {
		res = net.DefaultResolver
	}

	addrs, err := res.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return nil, err
	}

	out := make([]netip.Addr, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.Unmap())
	}
	return out, nil
}

const defaultResolvConf = "/etc/resolv.conf"

// DNSResolver queries a single nameserver directly for A and AAAA records,
// bypassing the OS resolver and its caches.
type DNSResolver struct {
	Server  string // host:port
	Net     string // udp (default) or tcp
	Timeout time.Duration
}

// NewDNSResolver builds a resolver for server ("host" or "host:port").
// An empty server falls back to the first nameserver in /etc/resolv.conf.
func NewDNSResolver(server string) (*DNSResolver, error) {
	if server == "" {
		cfg, err := dns.ClientConfigFromFile(defaultResolvConf)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", defaultResolvConf, err)
		}
		if len(cfg.Servers) == 0 {
			return nil, fmt.Errorf("no nameserver in %s", defaultResolvConf)
		}
		return &DNSResolver{Server: net.JoinHostPort(cfg.Servers[0], cfg.Port)}, nil
	}

	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(strings.TrimSuffix(strings.TrimPrefix(server, "["), "]"), "53")
	}
	return &DNSResolver{Server: server}, nil
}

func (r *DNSResolver) LookupNetIP(ctx context.Context, host string) ([]netip.Addr, error) {
	var (
		g          errgroup.Group
		v4, v6     []netip.Addr
		err4, err6 error
	)

	g.Go(func() error {
		v4, err4 = r.query(ctx, host, dns.TypeA)
		return nil
	})
	g.Go(func() error {
		v6, err6 = r.query(ctx, host, dns.TypeAAAA)
		return nil
	})
	_ = g.Wait()

	if err4 != nil && err6 != nil {
		return nil, errors.Join(err4, err6)
	}
	return append(v4, v6...), nil
}

func (r *DNSResolver) query(ctx context.Context, host string, qtype uint16) ([]netip.Addr, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), qtype)
	m.RecursionDesired = true

	c := &dns.Client{Net: r.Net, Timeout: r.Timeout}
	if c.Net == "" {
		c.Net = "udp"
	}
	if c.Timeout == 0 {
		c.Timeout = 5 * time.Second
	}

	in, _, err := c.ExchangeContext(ctx, m, r.Server)
	if err != nil {
		return nil, fmt.Errorf("%s %s via %s: %w", dns.TypeToString[qtype], host, r.Server, err)
	}
	if in.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("%s %s via %s: %s", dns.TypeToString[qtype], host, r.Server, dns.RcodeToString[in.Rcode])
	}

	var out []netip.Addr
	for _, rr := range in.Answer {
		var ip net.IP
		switch v := rr.(type) {
		case *dns.A:
			ip = v.A
		case *dns.AAAA:
			ip = v.AAAA
		default:
			continue
		}
		if a, ok := netipx.FromStdIP(ip); ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// Resolve never fails the sweep: on error it logs and returns an empty,
// non-nil slice together with the error for the report.
func Resolve(ctx context.Context, r Resolver, host string, logger *zap.Logger) ([]netip.Addr, error) {
	if ip, err := netip.ParseAddr(host); err == nil {
		return []netip.Addr{ip.Unmap()}, nil
	}

	addrs, err := r.LookupNetIP(ctx, host)
	if err != nil {
		logger.Warn("dns lookup failed", zap.String("host", host), zap.Error(err))
		return []netip.Addr{}, err
	}
	if addrs == nil {
		addrs = []netip.Addr{}
	}

	logger.Debug("dns lookup", zap.String("host", host), zap.Int("addresses", len(addrs)))
	return addrs, nil
}
