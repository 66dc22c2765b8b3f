// File: internal/netutil/interfaces_linux.go (complete file)

//go:build linux

package netutil

import (
	"os"
	"path/filepath"

	"github.com/jsimonetti/rtnetlink/v2"
	"github.com/mdlayher/ethtool"
	"github.com/prometheus/procfs/sysfs"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// sysClassNet is where the kernel exposes per-interface attributes.
var sysClassNet = "/sys/class/net"

func enrichInterfaces(ifaces []Interface, logger *zap.Logger) {
	conn, err := rtnetlink.Dial(nil)
	if err != nil {
		logger.Debug("rtnetlink unavailable, using portable interface flags", zap.Error(err))
	} else {
		defer conn.Close() //nolint:errcheck
	}

	eth, err := ethtool.New()
	if err != nil {
		logger.Debug("ethtool unavailable", zap.Error(err))
	} else {
		defer eth.Close() //nolint:errcheck
	}

	var netClass sysfs.NetClass
	if fs, err := sysfs.NewFS(sysfs.DefaultMountPoint); err == nil {
		if netClass, err = fs.NetClass(); err != nil {
			logger.Debug("reading sysfs net class failed", zap.Error(err))
		}
	}

	for i := range ifaces {
		ni := &ifaces[i]

		if conn != nil {
			link, err := conn.Link.Get(uint32(ni.Index))
			if err != nil {
				logger.Debug("error getting link", zap.String("link", ni.Name), zap.Error(err))
			} else {
				applyLink(ni, link)
			}
		}

		if isWireless(ni.Name) {
			ni.Type = InterfaceWireless80211
		}

		ni.SpeedBps = linkSpeed(eth, netClass, ni, logger)
	}
}

func applyLink(ni *Interface, link rtnetlink.LinkMessage) {
	var kind string
	if link.Attributes != nil {
		ni.OperationalStatus = statusFromOperState(link.Attributes.OperationalState)

		if link.Attributes.Info != nil {
			kind = link.Attributes.Info.Kind
		}

		if link.Attributes.Alias != nil && *link.Attributes.Alias != "" {
			ni.Description = *link.Attributes.Alias
		} else if kind != "" {
			ni.Description = kind
		} else {
			ni.Description = hardwareName(link.Type)
		}
	}

	ni.Type = typeFromARPHRD(link.Type, kind)
}

func statusFromOperState(s rtnetlink.OperationalState) OperationalStatus {
	switch s {
	case rtnetlink.OperStateUp:
		return OperStatusUp
	case rtnetlink.OperStateDown:
		return OperStatusDown
	case rtnetlink.OperStateTesting:
		return OperStatusTesting
	case rtnetlink.OperStateDormant:
		return OperStatusDormant
	case rtnetlink.OperStateNotPresent:
		return OperStatusNotPresent
	case rtnetlink.OperStateLowerLayerDown:
		return OperStatusLowerLayerDown
	default:
		return OperStatusUnknown
	}
}

func typeFromARPHRD(t uint16, kind string) InterfaceType {
	switch kind {
	case "wireguard", "tun", "ipip", "gre", "sit", "vxlan", "geneve":
		return InterfaceTunnel
	}

	switch t {
	case unix.ARPHRD_ETHER:
		return InterfaceEthernet
	case unix.ARPHRD_LOOPBACK:
		return InterfaceLoopback
	case unix.ARPHRD_PPP:
		return InterfacePpp
	case unix.ARPHRD_IEEE80211, unix.ARPHRD_IEEE80211_PRISM, unix.ARPHRD_IEEE80211_RADIOTAP:
		return InterfaceWireless80211
	case unix.ARPHRD_TUNNEL, unix.ARPHRD_TUNNEL6, unix.ARPHRD_SIT, unix.ARPHRD_IPGRE, unix.ARPHRD_IP6GRE, unix.ARPHRD_NONE:
		return InterfaceTunnel
	default:
		return InterfaceUnknown
	}
}

func hardwareName(t uint16) string {
	switch t {
	case unix.ARPHRD_ETHER:
		return "ether"
	case unix.ARPHRD_LOOPBACK:
		return "loopback"
	case unix.ARPHRD_PPP:
		return "ppp"
	case unix.ARPHRD_IEEE80211:
		return "ieee802.11"
	case unix.ARPHRD_TUNNEL:
		return "ipip"
	case unix.ARPHRD_TUNNEL6:
		return "tunnel6"
	case unix.ARPHRD_SIT:
		return "sit"
	case unix.ARPHRD_IPGRE:
		return "gre"
	case unix.ARPHRD_NONE:
		return "none"
	default:
		return "unknown"
	}
}

// isWireless checks the sysfs markers cfg80211 creates for wireless netdevs.
func isWireless(name string) bool {
	for _, marker := range []string{"wireless", "phy80211"} {
		if _, err := os.Stat(filepath.Join(sysClassNet, name, marker)); err == nil {
			return true
		}
	}
	return false
}

func linkSpeed(eth *ethtool.Client, netClass sysfs.NetClass, ni *Interface, logger *zap.Logger) int64 {
	if ni.Type == InterfaceLoopback {
		return SpeedUnknown
	}

	if eth != nil {
		mode, err := eth.LinkMode(ethtool.Interface{Index: ni.Index, Name: ni.Name})
		if err == nil && validSpeedMbps(int64(mode.SpeedMegabits)) {
			return int64(mode.SpeedMegabits) * 1_000_000
		}
		if err != nil {
			logger.Debug("ethtool link mode failed", zap.String("link", ni.Name), zap.Error(err))
		}
	}

	if nc, ok := netClass[ni.Name]; ok && nc.Speed != nil && validSpeedMbps(*nc.Speed) {
		return *nc.Speed * 1_000_000
	}

	return SpeedUnknown
}

// validSpeedMbps rejects the kernel's SPEED_UNKNOWN sentinels (-1 and 0xffffffff).
func validSpeedMbps(v int64) bool {
	return v > 0 && v < 0xffffffff
}
