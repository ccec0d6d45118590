package synthesis

import (
	"regexp"
	"strings"
)

// boilerplatePatterns match residual navigation, consent and error banners
// that survive extraction and would otherwise leak into summaries.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bNo description available\b`),
	regexp.MustCompile(`(?i)©\s*\d{4,}\s*-\s*Privacy\s*-\s*Terms`),
	regexp.MustCompile(`(?i)\bYour current User-Agent string appears to be from an automated process.*`),
	regexp.MustCompile(`(?i)\bSomething went wrong\. Wait a moment and try again\.`),
	regexp.MustCompile(`(?i)\bThis page is out of tune\b`),
	regexp.MustCompile(`(?i)\bcookies?\b|\bconsent\b|\bgdpr\b`),
	regexp.MustCompile(`(?i)\bBringing innovation to life\b`),
	regexp.MustCompile(`(?i)\bWIN\b`),
	regexp.MustCompile(`(?i)\bHOW WE DO IT\b`),
	regexp.MustCompile(`(?i)\bDISCOVER\b`),
}

var (
	sentenceEnd   = regexp.MustCompile(`([.!?])\s+`)
	nonWord       = regexp.MustCompile(`\W+`)
	multiSpace    = regexp.MustCompile(`\s{2,}`)
	spaceBeforePn = regexp.MustCompile(`\s+([,.;!?])`)
)

// Scrub removes boilerplate phrases and collapses the resulting whitespace.
func Scrub(text string) string {
	for _, pat := range boilerplatePatterns {
		text = pat.ReplaceAllString(text, " ")
	}
	return strings.TrimSpace(multiSpace.ReplaceAllString(text, " "))
}

// SplitSentences splits on terminal punctuation, keeping the mark with the
// sentence it ends.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeSentence produces the dedup key for a sentence: lower-cased with
// every non-word character removed.
func NormalizeSentence(s string) string {
	return nonWord.ReplaceAllString(strings.ToLower(s), "")
}

// TidyPunctuation collapses whitespace left before punctuation marks after
// joining sentences.
func TidyPunctuation(s string) string {
	return spaceBeforePn.ReplaceAllString(s, "$1")
}
