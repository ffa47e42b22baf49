package auth

import (
	"fmt"
	"net/netip"
	"strings"
)

// CanonicalizeIP converts an IP address to its canonical string form.
// IPv4-mapped IPv6 addresses collapse to plain IPv4, so "::ffff:10.0.0.1"
// and "10.0.0.1" compare equal.
func CanonicalizeIP(ip string) (string, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return addr.Unmap().String(), nil
}

// AllowList holds the addresses and networks allowed to call admin routes.
// An empty list allows everyone.
type AllowList struct {
	prefixes []netip.Prefix
}

// NewAllowList parses plain addresses ("10.0.0.1") and CIDR ranges ("10.0.0.0/8")
func NewAllowList(entries []string) (*AllowList, error) {
	l := &AllowList{}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("invalid network %q: %w", e, err)
			}
			l.prefixes = append(l.prefixes, netip.PrefixFrom(p.Addr().Unmap(), p.Bits()).Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("invalid IP address: %s", e)
		}
		addr = addr.Unmap()
		l.prefixes = append(l.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return l, nil
}

// Allows checks if the given IP is in the allowed list
func (l *AllowList) Allows(ip string) bool {
	if l == nil || len(l.prefixes) == 0 {
		return true
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range l.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
