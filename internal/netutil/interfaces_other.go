// File: internal/netutil/interfaces_other.go (complete file)

//go:build !linux

package netutil

import "go.uber.org/zap"

// enrichInterfaces has nothing beyond the portable flags on this platform.
func enrichInterfaces(ifaces []Interface, logger *zap.Logger) {
	logger.Debug("interface enrichment not supported on this platform", zap.Int("interfaces", len(ifaces)))
}
