package webpage

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// maxTextChars caps extracted text per page; synthesis weights early corpus
// entries heavily so anything past this adds noise, not signal.
const maxTextChars = 3000

// nonContentSelector matches nodes stripped before extraction.
const nonContentSelector = "script, style, noscript, template, iframe, svg, " +
	"header, footer, nav, form, aside, button, input"

// contentSelectors are tried in order; the longest text among all matches
// wins. Heading/paragraph fallback applies when none yield content.
var contentSelectors = []string{
	"main", "article", "[role=main]", ".content", ".post", ".entry-content",
	".hero", ".banner", ".intro", ".about", ".services", ".description",
	".main-content", ".page-content", ".text-content", ".body-content",
}

const (
	fallbackHeadings   = 5
	fallbackParagraphs = 8
)

var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)cookie\s+policy`),
	regexp.MustCompile(`(?i)privacy\s+policy`),
	regexp.MustCompile(`(?i)terms\s+of\s+service`),
	regexp.MustCompile(`(?i)all\s+rights\s+reserved`),
	regexp.MustCompile(`(?i)copyright\s+\d{4}`),
	regexp.MustCompile(`(?i)follow\s+us\s+on`),
	regexp.MustCompile(`(?i)subscribe\s+to\s+our`),
	regexp.MustCompile(`(?i)newsletter`),
	regexp.MustCompile(`(?i)social\s+media`),
}

// ExtractText parses an HTML body and returns cleaned main-content text.
// It never fails on malformed markup; an unparsable body yields NoDescription.
func ExtractText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return NoDescription
	}

	doc.Find(nonContentSelector).Remove()

	text := longestSelectorText(doc)
	if strings.TrimSpace(text) == "" {
		text = headingParagraphText(doc)
	}

	text = scrubNoise(text)
	if text == "" {
		return NoDescription
	}
	if len(text) > maxTextChars {
		text = clipAtRuneBoundary(text, maxTextChars)
	}
	return text
}

// clipAtRuneBoundary cuts s to at most n bytes, backing up so the cut never
// lands inside a multi-byte rune.
func clipAtRuneBoundary(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func longestSelectorText(doc *goquery.Document) string {
	var best string
	for _, sel := range contentSelectors {
		doc.Find(sel).Each(func(_ int, node *goquery.Selection) {
			candidate := collapseWhitespace(node.Text())
			if len(candidate) > len(best) {
				best = candidate
			}
		})
	}
	return best
}

func headingParagraphText(doc *goquery.Document) string {
	var parts []string
	doc.Find("h1, h2, h3").EachWithBreak(func(i int, node *goquery.Selection) bool {
		if i >= fallbackHeadings {
			return false
		}
		if t := collapseWhitespace(node.Text()); t != "" {
			parts = append(parts, t)
		}
		return true
	})
	doc.Find("p").EachWithBreak(func(i int, node *goquery.Selection) bool {
		if i >= fallbackParagraphs {
			return false
		}
		if t := collapseWhitespace(node.Text()); t != "" {
			parts = append(parts, t)
		}
		return true
	})
	return strings.Join(parts, " ")
}

func scrubNoise(text string) string {
	for _, pat := range noisePatterns {
		text = pat.ReplaceAllString(text, "")
	}
	return collapseWhitespace(text)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
