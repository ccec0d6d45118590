package synthesis

import (
	"regexp"
	"strings"
)

// Signals are the structured fields derived from a corpus before any prose
// is rendered. Empty fields mean the signal was absent, never "unknown".
type Signals struct {
	Company         string
	Industry        string
	BusinessModel   string
	Services        []string
	Audience        string
	Differentiators string
	Credibility     string
	Pricing         string
	Email           string
	Phone           string
	Location        string
	CTA             string
}

var (
	emailPattern = regexp.MustCompile(`(?i)[A-Z0-9._%+\-]+@[A-Z0-9.\-]+\.[A-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+?\d[\d\-\s().]{6,}\d)`)

	locationHints = regexp.MustCompile(`(?i)(headquarters|hq|based in|address|contact us|locations?)`)
	pricingHints  = regexp.MustCompile(`(?i)(pricing|plans|packages|quote|book a demo|free trial|trial|start free)`)
	freeTrialHint = regexp.MustCompile(`(?i)free trial|start free|freemium`)
	ctaHints      = regexp.MustCompile(`(?i)(contact us|get started|book a demo|request a demo|talk to sales|try free|sign up|start now)`)

	servicePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)we provide ([^.]+)`),
		regexp.MustCompile(`(?i)our services include ([^.]+)`),
		regexp.MustCompile(`(?i)we offer ([^.]+)`),
		regexp.MustCompile(`(?i)specializing in ([^.]+)`),
		regexp.MustCompile(`(?i)expertise in ([^.]+)`),
	}

	audiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfor ([^.]{10,80})`),
		regexp.MustCompile(`(?i)\bserving ([^.]{10,80})`),
		regexp.MustCompile(`(?i)\bhelping ([^.]{10,80})`),
		regexp.MustCompile(`(?i)\btargeting ([^.]{10,80})`),
	}

	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Welcome to ([A-Z][a-zA-Z\s&]+)`),
		regexp.MustCompile(`About ([A-Z][a-zA-Z\s&]+)`),
		regexp.MustCompile(`([A-Z][a-zA-Z\s&]+) is a`),
		regexp.MustCompile(`([A-Z][a-zA-Z\s&]+) provides`),
		regexp.MustCompile(`([A-Z][a-zA-Z\s&]+) specializes`),
	}

	credibilityCount = regexp.MustCompile(`(?i)\b(\d+)\+?\s*(clients?|customers?|years?|awards?|offices?|countries?)\b`)
	credibilityCert  = regexp.MustCompile(`(?i)\b(ISO|certified|partner|award|recognized|trusted)\b`)

	countryLocation = regexp.MustCompile(`\b([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)?),?\s+(USA|UK|United Kingdom|United States|India|Canada|Australia|Germany|France|Singapore|UAE|United Arab Emirates|Netherlands|Japan|Spain|Italy)\b`)
	placeLike       = regexp.MustCompile(`\b([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+){0,2})\b`)
)

var valueKeywords = []string{"unique", "only", "first", "leading", "innovative", "proven", "trusted", "award-winning"}

// ExtractSignals derives every structured field from already-scrubbed text.
// domainLabel is the registrable host label ("acme" for acme.example.com).
func ExtractSignals(text, domainLabel string) Signals {
	email, phone := firstContacts(text)
	return Signals{
		Company:         CompanyName(text, domainLabel),
		Industry:        ClassifyIndustry(text),
		BusinessModel:   businessModel(text),
		Services:        extractServices(text),
		Audience:        extractAudience(text),
		Differentiators: extractDifferentiators(text),
		Credibility:     extractCredibility(text),
		Pricing:         PricingSignal(text),
		Email:           email,
		Phone:           phone,
		Location:        guessLocation(text),
		CTA:             pickCTA(text),
	}
}

// CompanyName prefers the domain label when it is long enough to be a name,
// then falls back to introduction patterns in the text.
func CompanyName(text, domainLabel string) string {
	if len(domainLabel) > 3 {
		return titleCase(domainLabel)
	}
	for _, pat := range namePatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[1])
			if len(name) > 3 && len(name) < 50 {
				return name
			}
		}
	}
	return ""
}

func titleCase(s string) string {
	fields := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}

func businessModel(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "subscription", "monthly", "annual", "recurring"):
		return "subscription-based"
	case containsAny(lower, "freemium", "free trial", "free plan"):
		return "freemium"
	case containsAny(lower, "marketplace", "platform", "connect"):
		return "marketplace/platform"
	case containsAny(lower, "consulting", "advisory", "services"):
		return "service-based"
	case containsAny(lower, "product", "software", "tool"):
		return "product-based"
	}
	return "service-based"
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func extractServices(text string) []string {
	var services []string
	seen := make(map[string]struct{})
	for _, pat := range servicePatterns {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			for _, part := range strings.Split(m[1], ",") {
				svc := strings.Join(strings.Fields(part), " ")
				if len(svc) <= 5 || len(svc) >= 100 {
					continue
				}
				key := strings.ToLower(svc)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				services = append(services, svc)
				if len(services) == 5 {
					return services
				}
			}
		}
	}
	return services
}

func extractAudience(text string) string {
	var segments []string
	for _, pat := range audiencePatterns {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			segments = append(segments, strings.TrimSpace(m[1]))
			if len(segments) == 3 {
				return strings.Join(segments, "; ")
			}
		}
	}
	return strings.Join(segments, "; ")
}

func extractDifferentiators(text string) string {
	var picked []string
	for _, s := range SplitSentences(text) {
		if len(s) >= 150 {
			continue
		}
		lower := strings.ToLower(s)
		for _, kw := range valueKeywords {
			if strings.Contains(lower, kw) {
				picked = append(picked, strings.TrimSpace(s))
				break
			}
		}
		if len(picked) == 2 {
			break
		}
	}
	return strings.Join(picked, "; ")
}

func extractCredibility(text string) string {
	var elems []string
	for _, m := range credibilityCount.FindAllStringSubmatch(text, -1) {
		elems = append(elems, m[1]+" "+strings.ToLower(m[2]))
		if len(elems) == 3 {
			return strings.Join(elems, "; ")
		}
	}
	if credibilityCert.MatchString(text) {
		elems = append(elems, "certified/recognized")
	}
	return strings.Join(elems, "; ")
}

// PricingSignal reports how the site talks about pricing, empty when it
// does not.
func PricingSignal(text string) string {
	if !pricingHints.MatchString(text) {
		return ""
	}
	if freeTrialHint.MatchString(text) {
		return "Has free trial"
	}
	return "Pricing page / plans mentioned"
}

func firstContacts(text string) (email, phone string) {
	if m := emailPattern.FindString(text); m != "" {
		email = m
	}
	if m := phonePattern.FindString(text); m != "" {
		phone = strings.TrimSpace(m)
	}
	return email, phone
}

func guessLocation(text string) string {
	var block strings.Builder
	for _, s := range SplitSentences(text) {
		if locationHints.MatchString(s) {
			block.WriteString(" ")
			block.WriteString(s)
		}
	}
	if m := countryLocation.FindString(block.String()); m != "" {
		return m
	}
	return placeLike.FindString(block.String())
}

func pickCTA(text string) string {
	for _, s := range SplitSentences(text) {
		if ctaHints.MatchString(s) {
			return strings.Join(strings.Fields(s), " ")
		}
	}
	return ""
}
