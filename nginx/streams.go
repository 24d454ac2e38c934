package nginx

import (
	"fmt"
	"strings"
)

// FormatError reports a malformed entry in a stream specification string.
type FormatError struct {
	Entry string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid stream specification entry %q: expected <port>=<target>", e.Entry)
}

// ParseStreamSpecs parses a stream specification string of the form
// "port=target;port=target" into the ordered route list. The target is kept
// opaque. Any malformed entry rejects the whole string. A duplicate public
// port keeps its first position but takes the last target.
func ParseStreamSpecs(spec string) ([]StreamRoute, error) {
	if spec == "" {
		return []StreamRoute{}, nil
	}

	var routes []StreamRoute
	seen := map[string]int{}

	for _, entry := range strings.Split(spec, ";") {
		parts := strings.Split(entry, "=")
		if len(parts) != 2 {
			return nil, &FormatError{Entry: entry}
		}

		port, target := parts[0], parts[1]
		if i, ok := seen[port]; ok {
			routes[i].Destination = target
			continue
		}

		seen[port] = len(routes)
		routes = append(routes, StreamRoute{ListenPort: port, Destination: target})
	}

	return routes, nil
}
