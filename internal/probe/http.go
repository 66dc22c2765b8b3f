// File: internal/probe/http.go (complete file)

package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"time"

	"go.uber.org/zap"

	"github.com/baptistax/netdiag/internal/netutil"
	"github.com/baptistax/netdiag/internal/report"
)

// Probe identity: every request looks like the same browser-origin fetch.
const (
	HeaderAccept    = "*/*"
	HeaderOrigin    = "https://live.bilibili.com"
	HeaderReferer   = "https://live.bilibili.com/"
	HeaderUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/101.0.4951.54 Safari/537.36"
)

// ProbeTimeout bounds one probe until its response headers arrive.
const ProbeTimeout = 10 * time.Second

// Prober issues one HTTP attempt. A valid pin forces the connection to that address.
type Prober interface {
	Probe(ctx context.Context, rawURL string, pin netip.Addr) report.ProbeResult
}

type HTTPProber struct {
	Timeout time.Duration
	Logger  *zap.Logger
}

func (p *HTTPProber) Probe(ctx context.Context, rawURL string, pin netip.Addr) report.ProbeResult {
	res := report.ProbeResult{URL: rawURL, IP: report.AddrPtr(pin)}

	start := time.Now()
	status, err := p.do(ctx, rawURL, pin)
	res.ElapsedMS = time.Since(start).Milliseconds()

	if err != nil {
		p.logger().Debug("probe failed", zap.String("url", rawURL), zap.Stringer("pin", pin), zap.Error(err))
		res.Error = report.ErrorText(err)
		return res
	}

	res.Success = true
	res.StatusCode = status
	return res
}

func (p *HTTPProber) do(ctx context.Context, rawURL string, pin netip.Addr) (int, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = ProbeTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, err
	}

	var serverName string
	if pin.IsValid() {
		if serverName, err = netutil.PinRequest(req, pin); err != nil {
			return 0, err
		}
	}

	req.Header.Set("Accept", HeaderAccept)
	req.Header.Set("Origin", HeaderOrigin)
	req.Header.Set("Referer", HeaderReferer)
	req.Header.Set("User-Agent", HeaderUserAgent)

	client := netutil.NewProbeClient(serverName)
	defer client.CloseIdleConnections()

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("timed out after %s: %w", timeout, err)
		}
		return 0, err
	}
	// Only the headers matter; the body is never read.
	resp.Body.Close()

	return resp.StatusCode, nil
}

func (p *HTTPProber) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
