// Package summarize composes crawl, synthesis and budget enforcement into
// the single summary entry point the CLI, batch and API layers call.
package summarize

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/budget"
	"github.com/leadfoundry/sitebrief/internal/crawl"
	"github.com/leadfoundry/sitebrief/internal/frontier"
	"github.com/leadfoundry/sitebrief/internal/metrics"
	"github.com/leadfoundry/sitebrief/internal/synthesis"
)

// NoAccessibleContent is the summary returned when a crawl yields nothing
// usable. It is a sentinel value, not an error.
const NoAccessibleContent = "No accessible content found"

// extractiveBackfillSentences bounds how much raw corpus content the budget
// enforcer may pull in when the draft runs short.
const extractiveBackfillSentences = 12

// Crawler walks a site and returns the accepted corpus.
type Crawler interface {
	Crawl(ctx context.Context, target frontier.Target, opts crawl.Options) (crawl.Corpus, crawl.Stats)
}

// Synthesizer renders a corpus into a draft.
type Synthesizer interface {
	Synthesize(corpus crawl.Corpus, host string, style synthesis.Style) synthesis.Draft
}

// Options configure one summary request. Zero values fall back to service
// defaults.
type Options struct {
	MaxPages        int
	PerFetchTimeout time.Duration
	WallBudget      time.Duration
	Concurrency     int
	MinWords        int
	MaxWords        int
	Style           synthesis.Style
}

// Diagnostics describe what the crawl saw, independent of the summary text.
type Diagnostics struct {
	PagesDiscovered int
	PagesAccepted   int
	Outcomes        []crawl.PageOutcome
	WordCount       int
	NoContent       bool
}

// Result is a finished summary plus its diagnostics.
type Result struct {
	Summary     string
	Diagnostics Diagnostics
}

// Service runs the whole pipeline for one seed URL per call. Safe for
// concurrent use.
type Service struct {
	crawler Crawler
	synth   Synthesizer
	logger  *zap.Logger
}

// New constructs a Service.
func New(crawler Crawler, synth Synthesizer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{crawler: crawler, synth: synth, logger: logger}
}

// Summarize crawls the seed's site and produces a budget-compliant summary.
// The only error it returns is seed validation; everything downstream
// degrades to the NoAccessibleContent sentinel instead of failing.
func (s *Service) Summarize(ctx context.Context, seedURL string, opts Options) (Result, error) {
	target, err := frontier.NormalizeSeed(seedURL)
	if err != nil {
		return Result{}, fmt.Errorf("normalize seed %q: %w", seedURL, err)
	}

	start := time.Now()
	corpus, stats := s.crawler.Crawl(ctx, target, crawl.Options{
		MaxPages:        opts.MaxPages,
		PerFetchTimeout: opts.PerFetchTimeout,
		WallBudget:      opts.WallBudget,
		Concurrency:     opts.Concurrency,
	})
	metrics.ObserveCrawlDuration(target.Domain, time.Since(start))
	for _, o := range stats.Outcomes {
		metrics.ObservePage(target.Domain, string(o.Outcome))
	}

	diag := Diagnostics{
		PagesDiscovered: stats.Discovered,
		PagesAccepted:   stats.Accepted,
		Outcomes:        stats.Outcomes,
	}

	if corpus.Empty() {
		diag.NoContent = true
		metrics.ObserveSummary("no_content", 0)
		s.logger.Warn("no accessible content", zap.String("domain", target.Domain))
		return Result{Summary: NoAccessibleContent, Diagnostics: diag}, nil
	}

	draft := s.synth.Synthesize(corpus, target.Domain, opts.Style)
	backfill := synthesis.Extractive(synthesis.Scrub(corpus.CombinedText()), extractiveBackfillSentences)
	summary := budget.Enforce(draft.Text(), backfill, budget.Constraints{
		MinWords: opts.MinWords,
		MaxWords: opts.MaxWords,
	})

	diag.WordCount = budget.WordCount(summary)
	metrics.ObserveSummary("ok", diag.WordCount)
	s.logger.Info("summary produced",
		zap.String("domain", target.Domain),
		zap.Int("pages", diag.PagesAccepted),
		zap.Int("words", diag.WordCount),
	)
	return Result{Summary: summary, Diagnostics: diag}, nil
}
