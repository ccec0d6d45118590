package crawl

import (
	"strings"

	"github.com/leadfoundry/sitebrief/internal/webpage"
)

// Page is one accepted corpus entry.
type Page struct {
	URL string
	// Rank is the page's position in the prioritized frontier; the corpus
	// stays sorted by it regardless of fetch completion order.
	Rank int
	Text string
}

// Corpus is the ordered set of accepted page texts for one crawl.
// Order is priority rank: synthesis weights early entries more heavily, so
// the ordering is a correctness property.
type Corpus struct {
	Pages []Page
}

// Empty reports whether no usable content was collected.
func (c Corpus) Empty() bool {
	return len(c.Pages) == 0
}

// CombinedText concatenates page texts in rank order.
func (c Corpus) CombinedText() string {
	parts := make([]string, len(c.Pages))
	for i, p := range c.Pages {
		parts[i] = p.Text
	}
	return strings.Join(parts, " ")
}

// PageOutcome records the classified result of one fetch for diagnostics.
type PageOutcome struct {
	URL     string
	Outcome webpage.Outcome
}

// Stats summarizes a crawl for diagnostics.
type Stats struct {
	// Discovered counts frontier candidates, including the seed.
	Discovered int
	// Accepted counts pages admitted to the corpus.
	Accepted int
	// MaxPages is the effective page budget after noisy-domain capping.
	MaxPages int
	// Outcomes holds per-page outcome tags in fetch order.
	Outcomes []PageOutcome
}
