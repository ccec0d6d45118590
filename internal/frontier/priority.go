package frontier

import (
	"sort"
	"strings"
)

// Path buckets, checked in order; the first match wins so a path is never
// double-counted.
var (
	rootPaths = []string{"", "/", "/home", "/index"}

	aboutPrefixes = []string{
		"/about", "/who-we-are", "/company", "/team", "/our-story",
		"/mission", "/vision",
	}
	offeringPrefixes = []string{
		"/solutions", "/services", "/what-we-do", "/products", "/offerings",
	}
	supportPrefixes = []string{
		"/support", "/help", "/customer-success", "/success-stories",
		"/case-studies", "/testimonials",
	}
	secondaryPrefixes = []string{
		"/pricing", "/contact", "/industries", "/clients", "/portfolio",
		"/work", "/projects",
	}

	lowValueSubstrings = []string{
		"/login", "/cart", "/terms", "/privacy", "/press", "/blog/page/",
		"/search", "/admin", "/api", "/download", "/news", "/blog/", "/article",
	}
)

// Bucket scores, highest for the home page where the pitch usually lives.
const (
	scoreRoot      = 20
	scoreAbout     = 15
	scoreOffering  = 15
	scoreSupport   = 12
	scoreSecondary = 8

	shortPathBonusCap = 5
	lowValuePenalty   = 10
)

// Prioritize orders candidates by descending relevance score. The sort is
// stable, so ties keep their discovery order; the result is a deterministic
// total order.
func Prioritize(links []CandidateLink) []CandidateLink {
	out := make([]CandidateLink, len(links))
	copy(out, links)
	for i := range out {
		out[i].Score = ScorePath(out[i].Path)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// ScorePath computes the relevance score for a URL path.
func ScorePath(path string) int {
	p := strings.ToLower(path)

	score := bucketScore(p)
	if bonus := shortPathBonusCap - strings.Count(p, "/"); bonus > 0 {
		score += bonus
	}
	for _, sub := range lowValueSubstrings {
		if strings.Contains(p, sub) {
			score -= lowValuePenalty
			break
		}
	}
	return score
}

func bucketScore(p string) int {
	for _, root := range rootPaths {
		if p == root {
			return scoreRoot
		}
	}
	switch {
	case hasAnyPrefix(p, aboutPrefixes):
		return scoreAbout
	case hasAnyPrefix(p, offeringPrefixes):
		return scoreOffering
	case hasAnyPrefix(p, supportPrefixes):
		return scoreSupport
	case hasAnyPrefix(p, secondaryPrefixes):
		return scoreSecondary
	}
	return 0
}

func hasAnyPrefix(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
