package net

import "net"

// OutgoingIP reports the address viewers on the LAN should dial. The
// UDP dial never sends a packet; it only asks the kernel which local
// address routes outward.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return interfaceIP()
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// interfaceIP scans local interfaces for a usable IPv4 address, for
// networks with no outward route.
func interfaceIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	return "127.0.0.1"
}
