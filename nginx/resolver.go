package nginx

import (
	"errors"
	"fmt"

	"github.com/miekg/dns"
)

const resolvConfPath = "/etc/resolv.conf"

var ErrNoNameservers = errors.New("no nameservers found in resolv.conf")

// DiscoverResolver reads a resolv.conf style file and returns the first
// nameserver, the one nginx should use for backend name resolution.
func DiscoverResolver(path string) (string, error) {
	clientConfig, err := dns.ClientConfigFromFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %s", path, err)
	}

	if len(clientConfig.Servers) == 0 {
		return "", ErrNoNameservers
	}

	return clientConfig.Servers[0], nil
}

// DefaultResolver discovers the system resolver from /etc/resolv.conf.
func DefaultResolver() (string, error) {
	return DiscoverResolver(resolvConfPath)
}
