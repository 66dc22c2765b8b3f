// File: internal/netutil/httpclient.go (complete file)

package netutil

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// NewProbeClient returns a client that owns its own transport and never follows
// redirects. serverName, when set, overrides the TLS name so a pinned request to
// a literal IP still verifies against the original host.
func NewProbeClient(serverName string) *http.Client {
	transport := cleanhttp.DefaultTransport()
	transport.DialContext = (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: -1,
	}).DialContext
	transport.TLSClientConfig = &tls.Config{
		MinVersion: tls.VersionTLS12,
		ServerName: serverName,
	}
	transport.ForceAttemptHTTP2 = true

	return &http.Client{
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// PinRequest rewrites req so the connection goes to pin while the Host header
// (and TLS server name) keep naming the original host.
// It returns the server name to use for TLS.
func PinRequest(req *http.Request, pin netip.Addr) (string, error) {
	if !pin.IsValid() {
		return "", errors.New("invalid pin address")
	}

	orig := req.URL
	host := orig.Hostname()
	if host == "" {
		return "", fmt.Errorf("url %q has no host", orig.String())
	}

	pinned := *orig
	pinned.Host = hostWithPort(pin.String(), orig.Port())
	req.URL = &pinned
	req.Host = HostHeader(orig)

	return host, nil
}

// HostHeader is the Host value for u: its host, plus the port only when it
// differs from the scheme default.
func HostHeader(u *url.URL) string {
	host := u.Hostname()
	port := u.Port()
	if port == "" || port == defaultPort(u.Scheme) {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}
		return host
	}
	return net.JoinHostPort(host, port)
}

func hostWithPort(host, port string) string {
	if port == "" {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}
		return host
	}
	return net.JoinHostPort(host, port)
}

func defaultPort(scheme string) string {
	switch strings.ToLower(scheme) {
	case "http":
		return "80"
	case "https":
		return "443"
	default:
		return ""
	}
}
