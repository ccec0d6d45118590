// Package crawl drives the fetcher across a prioritized frontier under page
// and time budgets, producing an ordered corpus of accepted page texts.
package crawl

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/frontier"
	"github.com/leadfoundry/sitebrief/internal/hash/sha256"
	"github.com/leadfoundry/sitebrief/internal/webpage"
)

const (
	// discoveryCap is deliberately higher than any page budget so
	// prioritization has something to filter.
	discoveryCap = 30
	// corpusCeiling is an absolute performance guard on accepted pages.
	corpusCeiling = 25
	// minTextChars is the acceptance floor for extracted text.
	minTextChars = 50

	defaultConcurrency = 4
	maxConcurrency     = 8
	defaultWallBudget  = 45 * time.Second
)

// Fetcher fetches one URL and classifies the outcome.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, timeout time.Duration) webpage.Result
}

// LinkDiscoverer produces candidate links for a target.
type LinkDiscoverer interface {
	Discover(ctx context.Context, target frontier.Target, maxLinks int) []frontier.CandidateLink
}

// Options bound a single crawl.
type Options struct {
	MaxPages        int
	PerFetchTimeout time.Duration
	// WallBudget caps the whole crawl; outstanding fetches are cancelled
	// on expiry and the corpus keeps whatever completed.
	WallBudget time.Duration
	// Concurrency sizes the fetch worker pool (1..8).
	Concurrency int
}

func (o Options) withDefaults() Options {
	if o.MaxPages <= 0 {
		o.MaxPages = 15
	}
	if o.PerFetchTimeout <= 0 {
		o.PerFetchTimeout = 6 * time.Second
	}
	if o.WallBudget <= 0 {
		o.WallBudget = defaultWallBudget
	}
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	if o.Concurrency > maxConcurrency {
		o.Concurrency = maxConcurrency
	}
	return o
}

// Orchestrator owns one crawl at a time; nothing is shared across calls, so
// a single instance may serve concurrent crawls.
type Orchestrator struct {
	fetcher  Fetcher
	frontier LinkDiscoverer
	hasher   *sha256.Hasher
	logger   *zap.Logger
}

// New constructs an Orchestrator.
func New(fetcher Fetcher, discoverer LinkDiscoverer, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		fetcher:  fetcher,
		frontier: discoverer,
		hasher:   sha256.New(),
		logger:   logger,
	}
}

// Crawl fetches the prioritized frontier and returns the accepted corpus.
// Per-link failures never abort the crawl; an empty corpus means the caller
// must treat the site as having no accessible content.
func (o *Orchestrator) Crawl(ctx context.Context, target frontier.Target, opts Options) (Corpus, Stats) {
	opts = opts.withDefaults()
	if IsNoisyDomain(target.Domain) {
		if opts.MaxPages > noisyMaxPages {
			opts.MaxPages = noisyMaxPages
		}
		if opts.PerFetchTimeout > noisyFetchTimeout {
			opts.PerFetchTimeout = noisyFetchTimeout
		}
		o.logger.Debug("noisy domain; budgets tightened", zap.String("domain", target.Domain))
	}

	ctx, cancel := context.WithTimeout(ctx, opts.WallBudget)
	defer cancel()

	// The whole frontier is walked in priority order; acceptance stops at
	// corpusCeiling, not MaxPages, so per-link failures never shrink the
	// corpus while deeper links remain.
	candidates := o.frontier.Discover(ctx, target, discoveryCap)
	ordered := frontier.Prioritize(candidates)

	stats := Stats{
		Discovered: len(candidates),
		MaxPages:   opts.MaxPages,
	}

	results := o.fetchAll(ctx, ordered, opts)
	corpus := o.acceptResults(results, &stats)

	if corpus.Empty() {
		corpus = o.seedFallback(ctx, target, opts, &stats)
	}

	stats.Accepted = len(corpus.Pages)
	o.logger.Info("crawl finished",
		zap.String("domain", target.Domain),
		zap.Int("discovered", stats.Discovered),
		zap.Int("accepted", stats.Accepted),
	)
	return corpus, stats
}

// fetchAll runs the worker pool. Results are indexed by frontier rank so the
// corpus can be rebuilt in priority order, not arrival order.
func (o *Orchestrator) fetchAll(ctx context.Context, links []frontier.CandidateLink, opts Options) []webpage.Result {
	results := make([]webpage.Result, len(links))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rank := range jobs {
				results[rank] = o.fetcher.Fetch(ctx, links[rank].URL, opts.PerFetchTimeout)
			}
		}()
	}

feed:
	for rank := range links {
		select {
		case jobs <- rank:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

func (o *Orchestrator) acceptResults(results []webpage.Result, stats *Stats) Corpus {
	var corpus Corpus
	seen := make(map[string]struct{})

	for rank, res := range results {
		if res.URL == "" {
			// Fetch never ran; wall budget expired first.
			continue
		}
		stats.Outcomes = append(stats.Outcomes, PageOutcome{URL: res.URL, Outcome: res.Outcome})
		if !res.Usable(minTextChars) {
			continue
		}
		digest := o.hasher.Hash([]byte(res.Text))
		if _, dup := seen[digest]; dup {
			continue
		}
		seen[digest] = struct{}{}
		corpus.Pages = append(corpus.Pages, Page{URL: res.URL, Rank: rank, Text: res.Text})
		if len(corpus.Pages) >= corpusCeiling {
			break
		}
	}

	sort.SliceStable(corpus.Pages, func(i, j int) bool {
		return corpus.Pages[i].Rank < corpus.Pages[j].Rank
	})
	return corpus
}

// seedFallback retries the seed directly with an extended timeout when the
// whole frontier produced nothing.
func (o *Orchestrator) seedFallback(ctx context.Context, target frontier.Target, opts Options, stats *Stats) Corpus {
	timeout := 2 * opts.PerFetchTimeout
	if timeout < 10*time.Second {
		timeout = 10 * time.Second
	}
	res := o.fetcher.Fetch(ctx, target.SeedURL, timeout)
	stats.Outcomes = append(stats.Outcomes, PageOutcome{URL: res.URL, Outcome: res.Outcome})
	if res.Outcome != webpage.OutcomeOK || res.Text == webpage.NoDescription || res.Text == "" {
		return Corpus{}
	}
	return Corpus{Pages: []Page{{URL: res.URL, Rank: 0, Text: res.Text}}}
}
