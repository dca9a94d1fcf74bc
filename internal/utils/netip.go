package utils

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ParseHostNoPort returns the host part (no port) from strings like "ip:port", "[v6]:port", or "ip".
func ParseHostNoPort(s string) string {
	if s == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// FirstForwardedFor returns the first IP from X-Forwarded-For (left-most), trimmed.
func FirstForwardedFor(xff string) string {
	xff = strings.TrimSpace(xff)
	if xff == "" {
		return ""
	}
	if i := strings.IndexByte(xff, ','); i >= 0 {
		xff = xff[:i]
	}
	return strings.TrimSpace(xff)
}

// proxyHeaders are consulted in order when the proxy is trusted.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// ClientIP resolves the real client IP.
// If trustProxy is true, prefers CF-Connecting-IP, X-Forwarded-For (first), then X-Real-IP.
// Otherwise falls back to RemoteAddr only.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, h := range proxyHeaders {
			v := FirstForwardedFor(r.Header.Get(h))
			if ip := ParseHostNoPort(v); ip != "" {
				return ip
			}
		}
	}
	return ParseHostNoPort(r.RemoteAddr)
}

// IPMatcher matches client addresses against a list of prefixes. Single
// addresses are kept as /32 or /128 prefixes.
type IPMatcher struct {
	prefixes []netip.Prefix
}

// ParseIPMatcher parses a list of IPs and CIDRs. Blank entries are skipped;
// any other invalid entry is an error.
func ParseIPMatcher(list []string) (*IPMatcher, error) {
	m := &IPMatcher{}
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if strings.Contains(s, "/") {
			p, err := netip.ParsePrefix(s)
			if err != nil {
				return nil, fmt.Errorf("invalid CIDR %q: %w", s, err)
			}
			m.prefixes = append(m.prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, fmt.Errorf("invalid IP %q: %w", s, err)
		}
		addr = addr.Unmap()
		m.prefixes = append(m.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return m, nil
}

// IsEmpty reports whether the matcher has no rule. A nil matcher is empty.
func (m *IPMatcher) IsEmpty() bool {
	return m == nil || len(m.prefixes) == 0
}

// Allow reports whether ip falls in one of the prefixes.
func (m *IPMatcher) Allow(ip string) bool {
	if m == nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range m.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func (m *IPMatcher) String() string {
	if m == nil {
		return ""
	}
	parts := make([]string, 0, len(m.prefixes))
	for _, p := range m.prefixes {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, ",")
}
