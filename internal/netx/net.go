// Package netx holds small networking helpers.
package netx

import (
	"fmt"
	"net/url"
	"strings"
)

// BaseURL normalizes a configured server address into an absolute http(s)
// base URL without a trailing slash. A bare host:port gets "http://".
func BaseURL(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", fmt.Errorf("empty server address")
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("invalid server address %q: %w", addr, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("server address scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("server address %q has no host", addr)
	}

	return strings.TrimRight(u.String(), "/"), nil
}
