// File: internal/report/model.go (complete file)

package report

import (
	"net/netip"

	"github.com/baptistax/netdiag/internal/netutil"
)

type InterfaceFlags struct {
	DefaultIPv4 bool `json:"default_ipv4"`
	DefaultIPv6 bool `json:"default_ipv6"`
}

type InterfaceInfo struct {
	Name              string                    `json:"name"`
	Description       string                    `json:"description"`
	Flags             InterfaceFlags            `json:"flags"`
	Type              netutil.InterfaceType     `json:"type"`
	OperationalStatus netutil.OperationalStatus `json:"operational_status"`
	SpeedBps          int64                     `json:"speed_bps"` // -1 when unknown
	Addresses         []netip.Addr              `json:"addresses"`
}

// NetworkSnapshot is the connectivity state of the host at one point in time.
// Once built for output, every address in it is masked.
type NetworkSnapshot struct {
	IsWifiEnabled bool            `json:"is_wifi_enabled"` // a wireless interface exists
	IsWifiUsed    bool            `json:"is_wifi_used"`    // a wireless interface carries a default route
	IsIPv6Enabled bool            `json:"is_ipv6_enabled"`
	LocalIPv4     *netip.Addr     `json:"local_ipv4"`
	LocalIPv6     *netip.Addr     `json:"local_ipv6"`
	Interfaces    []InterfaceInfo `json:"interfaces"`
}

// ProbeResult is the outcome of one HTTP attempt. IP is nil for the unpinned probe.
type ProbeResult struct {
	URL        string      `json:"url"`
	IP         *netip.Addr `json:"ip"`
	Success    bool        `json:"success"`
	StatusCode int         `json:"status_code,omitempty"`
	Error      *string     `json:"error"`
	ElapsedMS  int64       `json:"elapsed_ms"`
}

type URLReport struct {
	URL       string        `json:"url"`
	Host      string        `json:"host"`
	Addresses []netip.Addr  `json:"addresses"`
	DNSError  *string       `json:"dns_error"`
	Results   []ProbeResult `json:"results"`
}

// AddrPtr returns nil for an absent address so it renders as JSON null.
func AddrPtr(a netip.Addr) *netip.Addr {
	if !a.IsValid() {
		return nil
	}
	return &a
}

// ErrorText returns the full error message, or nil when err is nil.
func ErrorText(err error) *string {
	if err == nil {
		return nil
	}
	s := err.Error()
	return &s
}
