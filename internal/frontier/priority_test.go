package frontier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorePath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want int
	}{
		{"/", scoreRoot + 4},
		{"/home", scoreRoot + 4},
		{"/about", scoreAbout + 4},
		{"/about-us", scoreAbout + 4},
		{"/services", scoreOffering + 4},
		{"/case-studies", scoreSupport + 4},
		{"/pricing", scoreSecondary + 4},
		{"/random-page", 4},
		{"/login", 4 - lowValuePenalty},
		{"/blog/page/2", 2 - lowValuePenalty},
		{"/a/b/c/d/e/f", 0},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ScorePath(tc.path), "path %s", tc.path)
		})
	}
}

func TestPrioritizeOrdersAboutBeforeUnbucketed(t *testing.T) {
	t.Parallel()

	links := []CandidateLink{
		{URL: "http://x.com/random-page", Path: "/random-page"},
		{URL: "http://x.com/about", Path: "/about"},
	}
	ordered := Prioritize(links)

	require.Len(t, ordered, 2)
	assert.Equal(t, "/about", ordered[0].Path,
		"an about-bucket path sorts strictly before an unbucketed one")
}

func TestPrioritizeIsStableOnTies(t *testing.T) {
	t.Parallel()

	links := []CandidateLink{
		{URL: "http://x.com/alpha", Path: "/alpha"},
		{URL: "http://x.com/beta", Path: "/beta"},
		{URL: "http://x.com/gamma", Path: "/gamma"},
	}
	ordered := Prioritize(links)

	assert.Equal(t, "/alpha", ordered[0].Path)
	assert.Equal(t, "/beta", ordered[1].Path)
	assert.Equal(t, "/gamma", ordered[2].Path)
}

func TestPrioritizeDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	links := []CandidateLink{{URL: "http://x.com/about", Path: "/about"}}
	_ = Prioritize(links)
	assert.Zero(t, links[0].Score)
}

func TestPrioritizeHomeFirst(t *testing.T) {
	t.Parallel()

	links := []CandidateLink{
		{URL: "http://x.com/services", Path: "/services"},
		{URL: "http://x.com/", Path: "/"},
		{URL: "http://x.com/about", Path: "/about"},
	}
	ordered := Prioritize(links)

	assert.Equal(t, "/", ordered[0].Path)
}
