package net

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// LinkScheme prefixes share links handed to remote tablets.
const LinkScheme = "signpad://"

// ShareLink builds the link a remote tablet uses to reach a host.
func ShareLink(ip string, port int) string {
	return LinkScheme + net.JoinHostPort(ip, strconv.Itoa(port))
}

// ParseLink extracts host:port from a share link. A bare host:port is
// accepted as well.
func ParseLink(link string) (string, error) {
	addr := strings.TrimPrefix(strings.TrimSpace(link), LinkScheme)
	addr = strings.TrimSuffix(addr, "/")
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", link, err)
	}
	if host == "" {
		return "", fmt.Errorf("invalid link %q: missing host", link)
	}
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return "", fmt.Errorf("invalid link %q: bad port", link)
	}
	return addr, nil
}
