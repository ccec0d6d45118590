package frontier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// CandidateLink is a discovered same-domain link plus its priority score.
type CandidateLink struct {
	URL   string
	Path  string
	Score int
}

// pathDenylist filters low-value or sensitive paths during discovery.
// Matching is a case-insensitive substring test against the full URL.
var pathDenylist = []string{
	"privacy", "terms", "cookie", "login", "register", "signup", "sign-up",
	"cart", "checkout", "account", "admin", "dashboard", "profile",
	"search", "sitemap", "rss", "feed", "api", "download", "file",
	"legal", "disclaimer", "accessibility", "investor", "financial", "sec", "ir",
}

// Builder discovers candidate links from a seed page.
type Builder struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewBuilder constructs a Builder. The timeout bounds the single seed-page
// request used for anchor discovery.
func NewBuilder(userAgent string, timeout time.Duration, logger *zap.Logger) *Builder {
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Discover collects up to maxLinks unique same-domain links from the seed
// page. The seed itself is always the first entry, even on total failure;
// discovery never returns an error.
func (b *Builder) Discover(ctx context.Context, target Target, maxLinks int) []CandidateLink {
	links := []CandidateLink{newCandidate(target.SeedURL)}
	if maxLinks <= 1 {
		return links
	}

	doc, err := b.fetchSeedDocument(ctx, target.SeedURL)
	if err != nil {
		b.logger.Debug("frontier discovery failed; seed only",
			zap.String("seed", target.SeedURL), zap.Error(err))
		return links
	}
	if doc == nil {
		// Non-HTML seed; nothing to discover.
		return links
	}

	base, err := url.Parse(target.SeedURL)
	if err != nil {
		return links
	}

	seen := map[string]struct{}{target.SeedURL: {}}
	doc.Find("a[href]").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		href, ok := anchor.Attr("href")
		if !ok {
			return true
		}
		resolved := resolveLink(base, href, target.Domain)
		if resolved == "" {
			return true
		}
		if _, dup := seen[resolved]; dup {
			return true
		}
		if deniedPath(resolved) {
			return true
		}
		seen[resolved] = struct{}{}
		links = append(links, newCandidate(resolved))
		return len(links) < maxLinks
	})

	return links
}

// fetchSeedDocument returns a parsed document, or (nil, nil) for non-HTML
// responses.
func (b *Builder) fetchSeedDocument(ctx context.Context, seedURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, seedURL, nil)
	if err != nil {
		return nil, err
	}
	if b.userAgent != "" {
		req.Header.Set("User-Agent", b.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("seed fetch status %d", resp.StatusCode)
	}
	if ct := strings.ToLower(resp.Header.Get("Content-Type")); ct != "" && !strings.Contains(ct, "text/html") {
		return nil, nil
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func resolveLink(base *url.URL, href, domain string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if !strings.EqualFold(resolved.Host, domain) {
		return ""
	}
	return resolved.String()
}

func deniedPath(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, deny := range pathDenylist {
		if strings.Contains(lower, deny) {
			return true
		}
	}
	return false
}

func newCandidate(rawURL string) CandidateLink {
	path := ""
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	return CandidateLink{URL: rawURL, Path: path}
}
