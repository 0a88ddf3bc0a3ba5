package cloud

import "net"

// SelectAddress returns the first address, in provider order, that is typed
// public or unknown and parses as a routable IPv4 address. Private, loopback,
// link-local and unspecified addresses are skipped.
func SelectAddress(addrs []Address) (string, bool) {
	for _, a := range addrs {
		if a.Type != AddressPublic && a.Type != AddressUnknown {
			continue
		}
		ip := net.ParseIP(a.IP)
		if ip == nil {
			continue
		}
		v4 := ip.To4()
		if v4 == nil {
			continue
		}
		if v4.IsPrivate() || v4.IsLoopback() || v4.IsLinkLocalUnicast() || v4.IsUnspecified() {
			continue
		}
		return v4.String(), true
	}
	return "", false
}

// FindByName returns the first instance whose name equals name exactly.
func FindByName(instances []Instance, name string) (*Instance, bool) {
	for i := range instances {
		if instances[i].Name == name {
			return &instances[i], true
		}
	}
	return nil, false
}
