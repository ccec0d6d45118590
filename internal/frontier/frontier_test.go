package frontier

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func targetFor(t *testing.T, srv *httptest.Server) Target {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return Target{SeedURL: srv.URL, Domain: u.Host}
}

func TestDiscoverCollectsSameDomainLinks(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body>
			<a href="/about">About</a>
			<a href="/services">Services</a>
			<a href="/about">About again</a>
			<a href="https://elsewhere.example/offsite">Offsite</a>
			<a href="/contact#sales">Contact</a>
		</body></html>`)
	}))
	defer srv.Close()

	b := NewBuilder("test-agent", 2*time.Second, zap.NewNop())
	links := b.Discover(context.Background(), targetFor(t, srv), 30)

	urls := make([]string, len(links))
	for i, l := range links {
		urls[i] = l.URL
	}

	assert.Equal(t, srv.URL, urls[0], "seed is always first")
	assert.Contains(t, urls, srv.URL+"/about")
	assert.Contains(t, urls, srv.URL+"/services")
	assert.Contains(t, urls, srv.URL+"/contact", "fragments are stripped")
	assert.NotContains(t, urls, "https://elsewhere.example/offsite")
	assert.Len(t, urls, 4, "duplicates removed")
}

func TestDiscoverSkipsDenylistedPaths(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body>
			<a href="/login">Login</a>
			<a href="/cart">Cart</a>
			<a href="/privacy">Privacy</a>
			<a href="/team">Team</a>
		</body></html>`)
	}))
	defer srv.Close()

	b := NewBuilder("", 2*time.Second, zap.NewNop())
	links := b.Discover(context.Background(), targetFor(t, srv), 30)

	require.Len(t, links, 2)
	assert.Equal(t, srv.URL+"/team", links[1].URL)
}

func TestDiscoverStopsAtMaxLinks(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body>")
		for i := 0; i < 50; i++ {
			fmt.Fprintf(w, `<a href="/page-%d">p</a>`, i)
		}
		fmt.Fprint(w, "</body></html>")
	}))
	defer srv.Close()

	b := NewBuilder("", 2*time.Second, zap.NewNop())
	links := b.Discover(context.Background(), targetFor(t, srv), 10)

	assert.Len(t, links, 10)
}

func TestDiscoverFailureReturnsSeedOnly(t *testing.T) {
	t.Parallel()

	b := NewBuilder("", time.Second, zap.NewNop())
	target := Target{SeedURL: "http://127.0.0.1:1", Domain: "127.0.0.1:1"}
	links := b.Discover(context.Background(), target, 30)

	require.Len(t, links, 1)
	assert.Equal(t, target.SeedURL, links[0].URL)
}

func TestDiscoverNonHTMLReturnsSeedOnly(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "%PDF-1.4")
	}))
	defer srv.Close()

	b := NewBuilder("", 2*time.Second, zap.NewNop())
	links := b.Discover(context.Background(), targetFor(t, srv), 30)

	assert.Len(t, links, 1)
}
