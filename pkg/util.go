package protocol

import (
	"net"
	"net/netip"
)

const (
	UnknownHost = "unknown_host"

	// probe target for LocalIPv4; nothing is sent, connecting a UDP socket
	// only selects the outgoing interface
	publicDNS = "8.8.8.8:53"
)

// LocalIPv4 returns the IPv4 address this host uses to reach the public
// internet, or UnknownHost.
func LocalIPv4() string {
	return LocalIPv4Via("udp4", publicDNS)
}

func LocalIPv4Via(network, target string) string {
	conn, err := net.Dial(network, target)
	if err != nil {
		return UnknownHost
	}
	defer conn.Close()

	addr, err := netip.ParseAddrPort(conn.LocalAddr().String())
	if err != nil {
		return UnknownHost
	}
	ip := addr.Addr().Unmap()
	if !ip.Is4() || ip.IsUnspecified() {
		return UnknownHost
	}
	return ip.String()
}

// AddrOf extracts the IP of a connection endpoint.
func AddrOf(a net.Addr) netip.Addr {
	if ap, err := netip.ParseAddrPort(a.String()); err == nil {
		return ap.Addr()
	}
	return netip.Addr{}
}

func formatAddr(addr netip.Addr) string {
	if !addr.IsValid() {
		return "*"
	}
	return addr.String()
}

// FormatPeer renders a connection endpoint for logs.
func FormatPeer(a net.Addr) string {
	if a == nil {
		return "*"
	}
	return formatAddr(AddrOf(a).Unmap())
}
