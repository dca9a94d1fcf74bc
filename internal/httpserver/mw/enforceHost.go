package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
	"github.com/MrSnakeDoc/secdash/internal/logger"
	"github.com/MrSnakeDoc/secdash/internal/utils"
)

// hostMatcher holds the allowed hosts, lower-cased. "*.example.com" is kept
// as the suffix ".example.com" and does not match "example.com" itself.
type hostMatcher struct {
	exact    map[string]struct{}
	suffixes []string
}

func newHostMatcher(hosts []string) hostMatcher {
	m := hostMatcher{exact: make(map[string]struct{}, len(hosts))}
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case h == "":
		case strings.HasPrefix(h, "*."):
			m.suffixes = append(m.suffixes, h[1:])
		default:
			m.exact[h] = struct{}{}
		}
	}
	return m
}

func (m hostMatcher) empty() bool {
	return len(m.exact) == 0 && len(m.suffixes) == 0
}

// match compares the host without its port.
func (m hostMatcher) match(host string) bool {
	host = strings.ToLower(utils.ParseHostNoPort(host))
	if _, ok := m.exact[host]; ok {
		return true
	}
	for _, suffix := range m.suffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// EnforceHost allows requests only if r.Host matches one of the allowed hosts.
// Supports wildcard patterns like "*.example.com".
// If allowedHosts is empty, it acts as a passthrough.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	hosts := newHostMatcher(allowedHosts)
	if hosts.empty() {
		log.Debug("host allowlist empty, passthrough mode")
		return passthrough
	}

	log.Debug("host allowlist enabled", logger.Strings("hosts", allowedHosts))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hosts.match(r.Host) {
				log.Debug("request rejected by host allowlist",
					logger.String("host", r.Host),
					logger.String("path", r.URL.Path))
				respond.Error(w, http.StatusForbidden, "host not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
