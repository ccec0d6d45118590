// Package budget enforces the word-count contract on a summary draft. It is
// a pure text transform: dedup, scrub, trim or pad, in that order.
package budget

import (
	"strings"

	"github.com/leadfoundry/sitebrief/internal/synthesis"
)

// Constraints bound the final summary size in words.
type Constraints struct {
	MinWords int
	MaxWords int
}

const (
	// DefaultMinWords and DefaultMaxWords frame the standard summary
	// window used when the caller passes zero values.
	DefaultMinWords = 130
	DefaultMaxWords = 200
)

func (c Constraints) withDefaults() Constraints {
	if c.MinWords <= 0 {
		c.MinWords = DefaultMinWords
	}
	if c.MaxWords <= 0 {
		c.MaxWords = DefaultMaxWords
	}
	if c.MaxWords < c.MinWords {
		c.MaxWords = c.MinWords
	}
	return c
}

// fillerPhrases guarantee the minimum when neither the draft nor extractive
// backfill carries enough words. Order matters; earlier phrases are more
// generic and read better at the end of a summary.
var fillerPhrases = []string{
	"The company focuses on delivering comprehensive solutions and maintaining strong client relationships.",
	"They provide professional services with a commitment to quality and customer satisfaction.",
	"The organization emphasizes innovation, reliability, and excellence in all their offerings.",
	"They serve clients across various industries with tailored solutions and dedicated support.",
	"The company maintains high standards of service delivery and continuous improvement.",
	"They offer competitive pricing and flexible service packages to meet diverse client needs.",
	"The team consists of experienced professionals dedicated to achieving client success.",
	"They utilize modern technology and best practices to deliver exceptional results.",
}

// Enforce normalizes the draft into a summary satisfying the constraints.
// backfill sentences are appended before generic filler when the draft runs
// short; real content beats canned phrases. When the input already satisfies
// the constraints and carries no duplicate or boilerplate sentences, the
// output equals the input.
func Enforce(draft string, backfill []string, c Constraints) string {
	c = c.withDefaults()

	text := synthesis.Scrub(strings.Join(strings.Fields(draft), " "))
	sentences, seen := dedupSentences(synthesis.SplitSentences(text))
	text = synthesis.TidyPunctuation(strings.Join(sentences, " "))

	if wordCount(text) > c.MaxWords {
		text = truncateAtBoundary(text, c.MaxWords)
	}

	if wordCount(text) < c.MinWords {
		text = pad(text, backfill, seen, c.MinWords)
	}
	if wordCount(text) < c.MinWords {
		text = pad(text, fillerPhrases, seen, c.MinWords)
	}
	if wordCount(text) > c.MaxWords {
		text = truncateAtBoundary(text, c.MaxWords)
	}
	return text
}

// WordCount counts whitespace-separated tokens, the unit the constraints
// are expressed in.
func WordCount(text string) int {
	return wordCount(text)
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func dedupSentences(sentences []string) ([]string, map[string]struct{}) {
	seen := make(map[string]struct{}, len(sentences))
	kept := make([]string, 0, len(sentences))
	for _, s := range sentences {
		key := synthesis.NormalizeSentence(s)
		if len(key) < 5 {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, s)
	}
	return kept, seen
}

func pad(text string, extra []string, seen map[string]struct{}, minWords int) string {
	count := wordCount(text)
	for _, s := range extra {
		if count >= minWords {
			break
		}
		s = strings.Join(strings.Fields(s), " ")
		key := synthesis.NormalizeSentence(s)
		if len(key) < 5 {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if text == "" {
			text = s
		} else {
			text += " " + s
		}
		count = wordCount(text)
	}
	return text
}

// truncateAtBoundary cuts to maxWords, preferring the last sentence-terminal
// mark when it falls in the final fifth of the truncated text. Only a hard
// mid-sentence cut gets an ellipsis.
func truncateAtBoundary(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	truncated := strings.Join(words[:maxWords], " ")
	if idx := strings.LastIndexAny(truncated, ".!?"); idx >= 0 {
		if float64(idx+1) >= 0.8*float64(len(truncated)) {
			return truncated[:idx+1]
		}
	}
	return truncated + "..."
}
