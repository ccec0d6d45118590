// Package synthesis turns a crawled corpus into a structured summary draft.
// Extraction is regex and keyword driven; no model inference is involved.
package synthesis

import (
	"strings"

	"go.uber.org/zap"

	"github.com/leadfoundry/sitebrief/internal/crawl"
)

// Synthesizer derives business signals from a corpus and renders them into
// an ordered draft. Safe for concurrent use.
type Synthesizer struct {
	templates *TemplateTable
	logger    *zap.Logger
}

// New constructs a Synthesizer. A nil table disables template lookup.
func New(templates *TemplateTable, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{templates: templates, logger: logger}
}

// Synthesize scrubs the corpus text, extracts signals and renders the draft
// in the requested style. It never fails; thin corpora just produce drafts
// with fewer sections.
func (s *Synthesizer) Synthesize(corpus crawl.Corpus, host string, style Style) Draft {
	if !style.Valid() {
		style = StyleSales
	}
	text := Scrub(corpus.CombinedText())
	sig := ExtractSignals(text, domainLabel(host))

	rec, matched := s.templates.Lookup(host)
	if matched {
		applyTemplate(&sig, rec)
	}

	var sections []string
	switch style {
	case StyleClean:
		sections = renderClean(sig)
	case StyleStructured:
		sections = renderStructured(sig, rec, matched)
	default:
		sections = renderSales(sig)
	}

	s.logger.Debug("draft synthesized",
		zap.String("host", host),
		zap.String("style", string(style)),
		zap.Int("sections", len(sections)),
		zap.Bool("template", matched),
	)
	return Draft{Sections: sections, Signals: sig}
}

// applyTemplate overrides identity fields with curated ones. Prose fields
// (offering, target, benefits) are full sentences and only the structured
// renderer consumes them directly.
func applyTemplate(sig *Signals, rec TemplateRecord) {
	if rec.Name != "" {
		sig.Company = rec.Name
	}
	if rec.Industry != "" {
		sig.Industry = rec.Industry
	}
}

// domainLabel strips www and the common TLD from a host, leaving the label
// used for company-name guessing.
func domainLabel(host string) string {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	for _, tld := range []string{".com", ".org", ".net"} {
		host = strings.ReplaceAll(host, tld, "")
	}
	return host
}
