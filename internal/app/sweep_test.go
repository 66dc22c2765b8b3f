// File: internal/app/sweep_test.go (complete file)

package app

import (
	"bytes"
	"context"
	"errors"
	"net/netip"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/baptistax/netdiag/internal/report"
)

type mapResolver map[string][]netip.Addr

func (m mapResolver) LookupNetIP(_ context.Context, host string) ([]netip.Addr, error) {
	if a, ok := m[host]; ok {
		return a, nil
	}
	return nil, errors.New("no such host")
}

type recordingProber struct {
	mu   sync.Mutex
	urls []string
}

func (p *recordingProber) Probe(_ context.Context, rawURL string, pin netip.Addr) report.ProbeResult {
	p.mu.Lock()
	p.urls = append(p.urls, rawURL)
	p.mu.Unlock()
	return report.ProbeResult{URL: rawURL, IP: report.AddrPtr(pin), Success: true, StatusCode: 200}
}

func TestRunSweep_OutputOrder(t *testing.T) {
	var out bytes.Buffer
	prober := &recordingProber{}

	err := RunSweep(context.Background(), SweepOptions{
		Targets: []string{"https://a.example", "https://b.example"},
		Out:     &out,
		Network: fakeNetwork{ifaces: testInterfaces()},
		Resolver: mapResolver{
			"a.example": {netip.MustParseAddr("192.0.2.1"), netip.MustParseAddr("2001:db8::1")},
		},
		Prober: prober,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	s := out.String()
	require.True(t, strings.HasPrefix(s, "-----------------2"), s)

	iSnap := strings.Index(s, `"is_wifi_enabled"`)
	iA := strings.Index(s, "DNS result: a.example")
	iAProbe := strings.Index(s, "Probe results: https://a.example")
	iB := strings.Index(s, "DNS result: b.example")
	iBErr := strings.Index(s, "DNS error: no such host")
	iBProbe := strings.Index(s, "Probe results: https://b.example")

	for _, i := range []int{iSnap, iA, iAProbe, iB, iBErr, iBProbe} {
		require.GreaterOrEqual(t, i, 0, s)
	}
	assert.Less(t, iSnap, iA)
	assert.Less(t, iA, iAProbe)
	assert.Less(t, iAProbe, iB)
	assert.Less(t, iB, iBErr)
	assert.Less(t, iBErr, iBProbe)

	// three probes for the dual-stack host, one for the unresolved one
	assert.Len(t, prober.urls, 4)
}

func TestRunSweep_InvalidTargetStopsBeforeWork(t *testing.T) {
	var out bytes.Buffer
	prober := &recordingProber{}

	err := RunSweep(context.Background(), SweepOptions{
		Targets:  []string{"https://ok.example", "ftp://bad.example"},
		Out:      &out,
		Network:  fakeNetwork{ifaces: testInterfaces()},
		Resolver: mapResolver{},
		Prober:   prober,
	}, zaptest.NewLogger(t))
	require.Error(t, err)

	assert.Empty(t, out.String())
	assert.Empty(t, prober.urls)
}

func TestRunSweep_EnumerationFailure(t *testing.T) {
	var out bytes.Buffer
	prober := &recordingProber{}

	err := RunSweep(context.Background(), SweepOptions{
		Targets:  []string{"https://a.example"},
		Out:      &out,
		Network:  fakeNetwork{err: errors.New("boom")},
		Resolver: mapResolver{},
		Prober:   prober,
	}, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Empty(t, prober.urls)
}

func TestRunSweep_SkipSnapshotTextFormat(t *testing.T) {
	var out bytes.Buffer

	err := RunSweep(context.Background(), SweepOptions{
		Targets:      []string{"https://a.example"},
		Format:       report.FormatText,
		Out:          &out,
		SkipSnapshot: true,
		Network:      fakeNetwork{err: errors.New("must not be called")},
		Resolver:     mapResolver{"a.example": {netip.MustParseAddr("192.0.2.1")}},
		Prober:       &recordingProber{},
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	s := out.String()
	assert.NotContains(t, s, "is_wifi_enabled")
	assert.Contains(t, s, "DNS a.example: 192.0.2.1\n")
	assert.Contains(t, s, "  [system] OK 200 (0ms)\n")
	assert.Contains(t, s, "  [192.0.2.1] OK 200 (0ms)\n")
}

func TestRunSweep_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prober := &recordingProber{}
	err := RunSweep(ctx, SweepOptions{
		Targets:      []string{"https://a.example"},
		Out:          &bytes.Buffer{},
		SkipSnapshot: true,
		Resolver:     mapResolver{},
		Prober:       prober,
	}, zaptest.NewLogger(t))

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, prober.urls)
}
