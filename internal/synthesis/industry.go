package synthesis

import "strings"

// DefaultIndustry is used when no keyword in the table matches at all.
const DefaultIndustry = "business services"

type industryEntry struct {
	category string
	keywords []string
}

// industryTable is scanned once per classification. Declaration order breaks
// score ties, so more specific categories come first.
var industryTable = []industryEntry{
	{"technology", []string{"software", "tech", "digital", "ai", "machine learning", "cloud", "saas", "platform"}},
	{"marketing", []string{"marketing", "advertising", "branding", "seo", "social media", "content"}},
	{"consulting", []string{"consulting", "advisory", "strategy", "business development"}},
	{"healthcare", []string{"healthcare", "medical", "health", "clinical", "pharmaceutical"}},
	{"finance", []string{"financial", "banking", "fintech", "investment", "trading"}},
	{"education", []string{"education", "learning", "training", "e-learning", "academic"}},
	{"ecommerce", []string{"ecommerce", "online store", "retail", "shopping", "marketplace"}},
	{"manufacturing", []string{"manufacturing", "production", "industrial", "factory"}},
	{"real estate", []string{"real estate", "property", "housing", "commercial"}},
	{"media", []string{"media", "publishing", "content", "news", "entertainment"}},
}

// ClassifyIndustry scores each category by the number of its keywords present
// in the text and returns the highest scorer, table order winning ties.
func ClassifyIndustry(text string) string {
	lower := strings.ToLower(text)
	best, bestScore := DefaultIndustry, 0
	for _, entry := range industryTable {
		score := 0
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = entry.category, score
		}
	}
	return best
}
