package tenants

import (
	"net"
	"regexp"
	"strings"
)

var handlePattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)

// NormalizeHost lower-cases the host and strips any port and trailing dot.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(host, ".")
}

// NormalizeHandle lower-cases a handle and reports whether it is well formed.
func NormalizeHandle(raw string) (string, bool) {
	handle := strings.ToLower(strings.Trim(strings.TrimSpace(raw), "/"))
	if !handlePattern.MatchString(handle) {
		return "", false
	}
	return handle, true
}

// HandleFromHost extracts {handle} from "{handle}.{baseDomain}".
func HandleFromHost(host, baseDomain string) (string, bool) {
	host = NormalizeHost(host)
	base := NormalizeHost(baseDomain)
	if host == "" || base == "" {
		return "", false
	}
	suffix := "." + base
	if !strings.HasSuffix(host, suffix) {
		return "", false
	}
	label := strings.TrimSuffix(host, suffix)
	if strings.Contains(label, ".") {
		return "", false
	}
	return NormalizeHandle(label)
}
