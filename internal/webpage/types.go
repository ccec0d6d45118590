// Package webpage fetches a single URL and reduces it to cleaned body text.
package webpage

// Outcome classifies the result of fetching one page.
type Outcome string

// Fetch outcomes.
const (
	// OutcomeOK means text was extracted, possibly the degenerate
	// NoDescription sentinel when the page held no usable content.
	OutcomeOK Outcome = "ok"
	// OutcomeBlocked means the response looked like an anti-bot wall.
	OutcomeBlocked Outcome = "blocked"
	// OutcomeError covers network failures and non-2xx responses.
	OutcomeError Outcome = "error"
)

// NoDescription is returned when extraction yields nothing after cleaning.
// It counts as a visited page, just a low-signal one.
const NoDescription = "No description available"

// Result is the classified outcome of one fetch.
type Result struct {
	URL     string
	Outcome Outcome
	Text    string
	// Reason holds the failure detail for OutcomeError results.
	Reason string
}

// Usable reports whether the result carries real extracted content of at
// least minChars characters.
func (r Result) Usable(minChars int) bool {
	return r.Outcome == OutcomeOK && r.Text != NoDescription && len(r.Text) > minChars
}
