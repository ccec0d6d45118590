// Package frontier discovers and prioritizes same-domain candidate links.
package frontier

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidSeed is returned when the seed URL cannot be normalized into a
// fetchable target. It is the only input validation error the pipeline
// surfaces to callers.
var ErrInvalidSeed = errors.New("invalid seed url")

// Target is the normalized crawl seed. Immutable for the duration of a crawl.
type Target struct {
	// SeedURL always carries a scheme.
	SeedURL string
	// Domain is the lowercased host the crawl is confined to.
	Domain string
}

// NormalizeSeed validates a raw seed URL and derives its domain.
// Schemeless input gets http:// prepended, matching how spreadsheet rows
// usually arrive.
func NormalizeSeed(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("%w: empty", ErrInvalidSeed)
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	if u.Hostname() == "" {
		return Target{}, fmt.Errorf("%w: missing host", ErrInvalidSeed)
	}
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	return Target{
		SeedURL: u.String(),
		Domain:  u.Host,
	}, nil
}
