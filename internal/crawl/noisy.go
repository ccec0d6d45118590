package crawl

import (
	"strings"
	"time"
)

// noisyDomains are large media/social platforms whose pages are plentiful but
// low-signal for business summaries. Crawls against them get tighter budgets.
var noisyDomains = []string{
	"nytimes.com", "bbc.com", "cnn.com", "theguardian.com", "forbes.com",
	"bloomberg.com", "reddit.com", "quora.com", "stackoverflow.com",
	"spotify.com", "netflix.com", "youtube.com", "twitter.com",
	"facebook.com", "instagram.com", "linkedin.com",
}

const (
	noisyMaxPages     = 8
	noisyFetchTimeout = 4 * time.Second
)

// IsNoisyDomain reports whether the host belongs to the noisy-domain set.
// Matching is by suffix so subdomains are covered.
func IsNoisyDomain(host string) bool {
	host = strings.ToLower(host)
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	for _, d := range noisyDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
