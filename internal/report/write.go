// File: internal/report/write.go (complete file)

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"net/netip"
	"strings"

	"github.com/dustin/go-humanize"
)

// Format selects how records are printed to stdout.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json|text)", s)
	}
}

func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func RenderSnapshotText(s NetworkSnapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Local IPv4: %s\n", printableAddr(s.LocalIPv4)))
	b.WriteString(fmt.Sprintf("Local IPv6: %s\n", printableAddr(s.LocalIPv6)))
	b.WriteString(fmt.Sprintf("IPv6 enabled: %s  |  Wi-Fi present: %s  |  Wi-Fi in use: %s\n",
		yesNo(s.IsIPv6Enabled), yesNo(s.IsWifiEnabled), yesNo(s.IsWifiUsed)))

	for _, ni := range s.Interfaces {
		b.WriteString(fmt.Sprintf("- %s (%s) %s/%s%s%s\n",
			ni.Name, ni.Description, ni.Type, ni.OperationalStatus, formatSpeed(ni.SpeedBps), formatDefault(ni.Flags)))
		for _, a := range ni.Addresses {
			b.WriteString("    " + a.String() + "\n")
		}
	}

	return b.String()
}

func RenderURLText(r URLReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("DNS %s: ", r.Host))
	switch {
	case r.DNSError != nil:
		b.WriteString("error: " + *r.DNSError + "\n")
	case len(r.Addresses) == 0:
		b.WriteString("(none)\n")
	default:
		parts := make([]string, 0, len(r.Addresses))
		for _, a := range r.Addresses {
			parts = append(parts, a.String())
		}
		b.WriteString(strings.Join(parts, ", ") + "\n")
	}

	for _, res := range r.Results {
		via := "system"
		if res.IP != nil {
			via = res.IP.String()
		}
		if res.Success {
			b.WriteString(fmt.Sprintf("  [%s] OK %d (%dms)\n", via, res.StatusCode, res.ElapsedMS))
			continue
		}
		msg := "unknown error"
		if res.Error != nil {
			msg = *res.Error
		}
		b.WriteString(fmt.Sprintf("  [%s] FAIL (%dms): %s\n", via, res.ElapsedMS, msg))
	}

	return b.String()
}

func printableAddr(a *netip.Addr) string {
	if a == nil {
		return "(none)"
	}
	return a.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatSpeed(bps int64) string {
	if bps < 0 {
		return ""
	}
	return " " + humanize.SI(float64(bps), "bps")
}

func formatDefault(f InterfaceFlags) string {
	switch {
	case f.DefaultIPv4 && f.DefaultIPv6:
		return " [default v4+v6]"
	case f.DefaultIPv4:
		return " [default v4]"
	case f.DefaultIPv6:
		return " [default v6]"
	default:
		return ""
	}
}
