package nginx

import (
	"fmt"
	"net/url"
)

// NormalizeTarget rewrites a "localhost" host in the target URL to 127.0.0.1.
// Some DNS servers do not resolve localhost at all, and some resolve it for A
// but not AAAA records, which makes nginx fail hard since it uses the
// configured resolver for all name lookups. Rewriting here removes the DNS
// dependency entirely for the common case. Only an exact host match is
// rewritten, never a substring or a path segment.
func NormalizeTarget(target string) (string, error) {
	if target == "" {
		return "", nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid target url %q: %s", target, err)
	}

	if u.Hostname() == "localhost" {
		if port := u.Port(); port != "" {
			u.Host = "127.0.0.1:" + port
		} else {
			u.Host = "127.0.0.1"
		}
	}

	return u.String(), nil
}
