package summarize

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/budget"
	"github.com/leadfoundry/sitebrief/internal/crawl"
	"github.com/leadfoundry/sitebrief/internal/frontier"
	"github.com/leadfoundry/sitebrief/internal/metrics"
	"github.com/leadfoundry/sitebrief/internal/synthesis"
	"github.com/leadfoundry/sitebrief/internal/webpage"
)

func TestMain(m *testing.M) {
	metrics.Init()
	m.Run()
}

type stubCrawler struct {
	corpus crawl.Corpus
	stats  crawl.Stats
	target frontier.Target
}

func (s *stubCrawler) Crawl(_ context.Context, target frontier.Target, _ crawl.Options) (crawl.Corpus, crawl.Stats) {
	s.target = target
	return s.corpus, s.stats
}

func newService(c Crawler) *Service {
	synth := synthesis.New(synthesis.NewTemplateTable(synthesis.DefaultTemplates()), zap.NewNop())
	return New(c, synth, zap.NewNop())
}

func TestSummarizeProducesBudgetCompliantSummary(t *testing.T) {
	text := "About Example Inc, we provide consulting to startups and growing businesses. " +
		"Our services include strategy workshops, advisory retainers, growth coaching. " +
		"We are the leading advisory firm for early-stage founders across Europe. " +
		"Contact us at hello@example.com to get started today."
	c := &stubCrawler{
		corpus: crawl.Corpus{Pages: []crawl.Page{{URL: "https://example.com/", Rank: 0, Text: text}}},
		stats: crawl.Stats{Discovered: 1, Accepted: 1, MaxPages: 15, Outcomes: []crawl.PageOutcome{
			{URL: "https://example.com/", Outcome: webpage.OutcomeOK},
		}},
	}

	res, err := newService(c).Summarize(context.Background(), "example.com", Options{MinWords: 130, MaxWords: 200})
	require.NoError(t, err)

	words := budget.WordCount(res.Summary)
	assert.GreaterOrEqual(t, words, 130)
	assert.LessOrEqual(t, words, 200)
	assert.Equal(t, words, res.Diagnostics.WordCount)
	assert.Contains(t, res.Summary, "Example")
	assert.Contains(t, res.Summary, "consulting")
	assert.Equal(t, 1, res.Diagnostics.PagesAccepted)
	assert.False(t, res.Diagnostics.NoContent)
	assert.Equal(t, "example.com", c.target.Domain)
}

func TestSummarizeEmptyCorpusReturnsSentinel(t *testing.T) {
	c := &stubCrawler{stats: crawl.Stats{Discovered: 1, Outcomes: []crawl.PageOutcome{
		{URL: "https://blocked.test/", Outcome: webpage.OutcomeBlocked},
	}}}

	res, err := newService(c).Summarize(context.Background(), "https://blocked.test", Options{})
	require.NoError(t, err)

	assert.Equal(t, NoAccessibleContent, res.Summary)
	assert.True(t, res.Diagnostics.NoContent)
	assert.Zero(t, res.Diagnostics.WordCount)
	require.Len(t, res.Diagnostics.Outcomes, 1)
	assert.Equal(t, webpage.OutcomeBlocked, res.Diagnostics.Outcomes[0].Outcome)
}

func TestSummarizeInvalidSeed(t *testing.T) {
	_, err := newService(&stubCrawler{}).Summarize(context.Background(), "   ", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, frontier.ErrInvalidSeed)
}

func TestSummarizeSchemelessSeedNormalized(t *testing.T) {
	c := &stubCrawler{
		corpus: crawl.Corpus{Pages: []crawl.Page{{URL: "http://acme.io/", Rank: 0, Text: strings.Repeat("Acme builds tools. ", 10)}}},
	}
	_, err := newService(c).Summarize(context.Background(), "acme.io/path", Options{})
	require.NoError(t, err)
	assert.Equal(t, "acme.io", c.target.Domain)
}
