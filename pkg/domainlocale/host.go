package domainlocale

import (
	"net/http"
	"strings"
)

// HeaderForwardedHost is consulted before the Host header.
const HeaderForwardedHost = "X-Forwarded-Host"

// GetHost returns the lowercase request host, port included.
// The first X-Forwarded-Host entry wins over r.Host.
//
// Examples:
//
//	Host: "Example.COM:8080"                   -> "example.com:8080"
//	X-Forwarded-Host: "fr.example.com, proxy"  -> "fr.example.com"
func GetHost(r *http.Request) string {
	if fwd := r.Header.Get(HeaderForwardedHost); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return strings.ToLower(first)
		}
	}
	return strings.ToLower(r.Host)
}

// StripPort removes the port from a host, keeping IPv6 brackets.
//
// Examples:
//
//	"example.com:8080" -> "example.com"
//	"[::1]:8080"       -> "[::1]"
func StripPort(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		// Check it's not an IPv6 address
		if !strings.Contains(host[idx:], "]") {
			host = host[:idx]
		}
	}
	return host
}

// NormalizeDomain strips a leading http:// or https:// and lowercases.
func NormalizeDomain(domain string) string {
	d := strings.TrimSpace(domain)
	lower := strings.ToLower(d)
	switch {
	case strings.HasPrefix(lower, "https://"):
		d = d[len("https://"):]
	case strings.HasPrefix(lower, "http://"):
		d = d[len("http://"):]
	}
	return strings.ToLower(strings.TrimSuffix(d, "/"))
}

// hostMatches compares a configured domain with a request host.
// A domain without a port also matches the host with its port stripped.
func hostMatches(domain, host string) bool {
	d := NormalizeDomain(domain)
	if d == "" {
		return false
	}
	h := strings.ToLower(host)
	return d == h || d == StripPort(h)
}
