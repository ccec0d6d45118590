package webpage

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// defaultUserAgent mimics a desktop browser; many business sites serve an
// interstitial to anything that self-identifies as a bot.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// browserHeaders is the fixed header set sent with every request.
var browserHeaders = http.Header{
	"Accept":                    {"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
	"Accept-Language":           {"en-US,en;q=0.9"},
	"Connection":                {"keep-alive"},
	"Upgrade-Insecure-Requests": {"1"},
}

// Config controls collector behavior.
type Config struct {
	UserAgent string
	// Timeout is the default per-fetch timeout when Fetch receives zero.
	Timeout time.Duration
}

// Fetcher fetches one URL per call and returns cleaned text or a classified
// failure. It is safe for concurrent use; each Fetch clones the collector.
type Fetcher struct {
	cfg           Config
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// New builds a Fetcher.
func New(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := colly.NewCollector(colly.Async(false))
	c.WithTransport(newHTTPTransport())
	return &Fetcher{
		cfg:           cfg,
		baseCollector: c,
		logger:        logger,
	}
}

// Fetch retrieves rawURL with the given timeout and classifies the outcome.
// Failures are folded into the Result; Fetch itself never returns an error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, timeout time.Duration) Result {
	if timeout <= 0 {
		timeout = f.cfg.Timeout
	}

	body, fetchErr := f.fetchBody(ctx, rawURL, timeout)
	if fetchErr != nil {
		f.logger.Debug("page fetch failed", zap.String("url", rawURL), zap.Error(fetchErr))
		return Result{URL: rawURL, Outcome: OutcomeError, Reason: fetchErr.Error()}
	}

	if LooksLikeBotWall(body) {
		f.logger.Debug("bot wall detected", zap.String("url", rawURL))
		return Result{URL: rawURL, Outcome: OutcomeBlocked}
	}

	return Result{URL: rawURL, Outcome: OutcomeOK, Text: ExtractText(body)}
}

func (f *Fetcher) fetchBody(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, error) {
	collector := f.baseCollector.Clone()
	collector.UserAgent = f.cfg.UserAgent
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(timeout)

	var (
		body    []byte
		respErr error
		gotBody bool
	)
	collector.OnRequest(func(r *colly.Request) {
		for key, values := range browserHeaders {
			for _, v := range values {
				r.Headers.Set(key, v)
			}
		}
	})
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
		gotBody = true
	})
	collector.OnError(func(_ *colly.Response, err error) {
		respErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(rawURL)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-done:
		switch {
		case respErr != nil:
			return nil, respErr
		case err != nil:
			return nil, err
		case !gotBody:
			return nil, errNoResponse
		}
		return body, nil
	}
}

var errNoResponse = errors.New("no response received")

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
