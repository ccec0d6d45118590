package synthesis

import (
	"regexp"
	"sort"
	"strings"
)

var (
	wordToken     = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
	oddChars      = regexp.MustCompile(`[^\w\s.,!?\-]`)
	innerSpace    = regexp.MustCompile(`\s+`)
	navLeadPrefix = []string{"click", "read more", "learn more", "get started", "subscribe", "follow us"}
)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {}, "from": {},
	"your": {}, "you": {}, "are": {}, "our": {}, "have": {}, "has": {}, "was": {},
	"were": {}, "will": {}, "can": {}, "but": {}, "not": {}, "all": {}, "any": {},
	"out": {}, "into": {}, "about": {}, "over": {}, "more": {}, "than": {}, "their": {},
	"its": {}, "they": {}, "them": {}, "get": {}, "use": {}, "services": {},
	"company": {}, "business": {}, "website": {}, "contact": {}, "email": {},
	"phone": {}, "address": {},
}

var businessKeywords = map[string]struct{}{
	"marketing": {}, "branding": {}, "design": {}, "development": {}, "solutions": {},
	"technology": {}, "artificial": {}, "intelligence": {}, "strategy": {},
	"consulting": {}, "agency": {}, "products": {}, "software": {}, "digital": {},
	"online": {}, "web": {}, "mobile": {}, "app": {}, "platform": {}, "system": {},
	"tools": {}, "analytics": {}, "data": {}, "cloud": {},
}

// Extractive selects up to maxSentences informative sentences from text,
// scored by keyword frequency with a boost for business terms. The lead
// sentence is preserved when it carries enough content.
func Extractive(text string, maxSentences int) []string {
	var candidates []string
	seen := make(map[string]struct{})
	for _, s := range SplitSentences(text) {
		s = strings.TrimSpace(innerSpace.ReplaceAllString(oddChars.ReplaceAllString(s, " "), " "))
		if len(s) <= 20 || len(s) >= 300 {
			continue
		}
		if hasNavLead(s) {
			continue
		}
		key := NormalizeSentence(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		candidates = append(candidates, s)
	}
	if len(candidates) <= maxSentences {
		return candidates
	}

	freq := make(map[string]int)
	for _, tok := range wordToken.FindAllString(strings.ToLower(text), -1) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, boost := businessKeywords[tok]; boost {
			freq[tok] += 2
		} else {
			freq[tok]++
		}
	}

	type scored struct {
		score float64
		sent  string
	}
	ranked := make([]scored, 0, len(candidates))
	for _, s := range candidates {
		ranked = append(ranked, scored{score: scoreSentence(s, freq), sent: s})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	top := make([]string, 0, maxSentences)
	for _, r := range ranked[:maxSentences] {
		top = append(top, r.sent)
	}

	// Keep the lead sentence as an anchor when it was outranked.
	lead := candidates[0]
	if len(lead) > 30 && !containsSentence(top, lead) {
		top = append([]string{lead}, top[:maxSentences-1]...)
	}
	return top
}

func scoreSentence(s string, freq map[string]int) float64 {
	words := wordToken.FindAllString(strings.ToLower(s), -1)
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += freq[w]
	}
	score := float64(total) / float64(len(words))

	lead := words
	if len(lead) > 3 {
		lead = lead[:3]
	}
	for _, w := range lead {
		if _, ok := businessKeywords[w]; ok {
			score += 2
		}
	}

	lengthBoost := float64(len(s)) / 100
	if lengthBoost > 2 {
		lengthBoost = 2
	}
	return score + lengthBoost
}

func hasNavLead(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range navLeadPrefix {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func containsSentence(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
