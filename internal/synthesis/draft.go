package synthesis

import "strings"

// Style selects how extracted signals are rendered into prose. All styles
// share the same extraction and downstream budget enforcement.
type Style string

const (
	// StyleSales renders the full sales briefing with credibility and
	// next-step sections. It is the default.
	StyleSales Style = "sales"
	// StyleClean renders a compact factual profile.
	StyleClean Style = "clean"
	// StyleStructured renders template-driven prose for recognized
	// platforms, generic prose otherwise.
	StyleStructured Style = "structured"
)

// Valid reports whether s names a known style.
func (s Style) Valid() bool {
	switch s {
	case StyleSales, StyleClean, StyleStructured:
		return true
	}
	return false
}

// Draft is the ordered pre-budget summary. Sections with no underlying
// signal are omitted entirely, never padded.
type Draft struct {
	Sections []string
	Signals  Signals
}

// Text joins the sections into a single paragraph.
func (d Draft) Text() string {
	return strings.TrimSpace(strings.Join(d.Sections, " "))
}

type serviceGroup struct {
	label    string
	keywords []string
}

var serviceGroups = []serviceGroup{
	{"marketing services", []string{"marketing", "advertising", "branding", "seo", "social media", "content"}},
	{"development services", []string{"development", "programming", "coding", "software", "web development", "app development"}},
	{"consulting services", []string{"consulting", "advisory", "strategy", "business development"}},
	{"design services", []string{"design", "ui/ux", "graphic design", "creative"}},
	{"analytics services", []string{"analytics", "data", "reporting", "insights", "business intelligence"}},
}

// serviceCategories maps raw extracted services onto stable group labels,
// first matching group wins per service.
func serviceCategories(services []string) []string {
	var found []string
	taken := make(map[string]struct{})
	for _, svc := range services {
		lower := strings.ToLower(svc)
		for _, g := range serviceGroups {
			if _, dup := taken[g.label]; dup {
				continue
			}
			for _, kw := range g.keywords {
				if strings.Contains(lower, kw) {
					taken[g.label] = struct{}{}
					found = append(found, g.label)
					break
				}
			}
			if _, hit := taken[g.label]; hit {
				break
			}
		}
	}
	return found
}

func renderSales(sig Signals) []string {
	var sections []string

	name := sig.Company
	if name == "" {
		name = "This company"
	}
	intro := name
	if sig.Industry != "" {
		intro += " is a leading " + sig.Industry + " company"
	} else {
		intro += " is a professional services company"
	}
	if cats := serviceCategories(sig.Services); len(cats) > 0 {
		intro += " specializing in " + strings.Join(capN(cats, 2), ", ")
	}
	sections = append(sections, intro+".")

	if core := renderCoreServices(sig.Services); core != "" {
		sections = append(sections, core)
	}
	if sig.Audience != "" {
		if list := firstSegments(sig.Audience, 2); list != "" {
			sections = append(sections, "Target customers include "+list+".")
		}
	}
	if sig.Differentiators != "" {
		if props := firstSegments(sig.Differentiators, 2); props != "" {
			sections = append(sections, "Key advantages: "+props+".")
		}
	}
	if cred := renderCredibility(sig); cred != "" {
		sections = append(sections, cred)
	}
	if contact := renderContact(sig); contact != "" {
		sections = append(sections, contact)
	}
	return sections
}

func renderCoreServices(services []string) string {
	if len(services) == 0 {
		return ""
	}
	if cats := serviceCategories(services); len(cats) > 0 {
		return "Core services include " + strings.Join(capN(cats, 3), ", ") + "."
	}
	return "Key offerings include " + strings.Join(capN(services, 3), ", ") + "."
}

func renderCredibility(sig Signals) string {
	var parts []string
	if sig.Credibility != "" {
		parts = append(parts, "Credibility: "+firstSegments(sig.Credibility, 2))
	}
	if sig.Pricing != "" {
		parts = append(parts, sig.Pricing)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ". ") + "."
}

func renderContact(sig Signals) string {
	var parts []string
	if sig.Email != "" {
		parts = append(parts, "email: "+sig.Email)
	}
	if sig.Phone != "" {
		parts = append(parts, "phone: "+sig.Phone)
	}
	if sig.Location != "" {
		parts = append(parts, "location: "+sig.Location)
	}
	if sig.CTA != "" {
		parts = append(parts, "next step: "+sig.CTA)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Contact: " + strings.Join(capN(parts, 2), "; ") + "."
}

func renderClean(sig Signals) []string {
	var sections []string

	name := sig.Company
	if name == "" {
		name = "This company"
	}
	industry := sig.Industry
	if industry == "" {
		industry = DefaultIndustry
	}
	intro := name + " is a " + industry + " company"
	if len(sig.Services) > 0 {
		intro += " specializing in " + strings.Join(capN(sig.Services, 2), ", ")
	}
	sections = append(sections, intro+".")

	if len(sig.Services) > 2 {
		sections = append(sections, "The company provides "+strings.Join(capN(sig.Services, 3), ", ")+" to help businesses achieve their goals.")
	}
	if sig.Audience != "" {
		sections = append(sections, "Their target customers include "+firstSegments(sig.Audience, 2)+".")
	}
	if sig.Differentiators != "" {
		sections = append(sections, "Key advantages include "+firstSegments(sig.Differentiators, 1)+".")
	}
	if contact := renderContact(sig); contact != "" {
		sections = append(sections, contact)
	}
	return sections
}

func renderStructured(sig Signals, rec TemplateRecord, matched bool) []string {
	var sections []string

	name := sig.Company
	if rec.Name != "" {
		name = rec.Name
	}
	if name == "" {
		name = "This company"
	}

	if matched {
		industry := rec.Industry
		if industry == "" {
			industry = sig.Industry
		}
		sections = append(sections, name+" is a leading "+industry+" company.")
		if rec.Offering != "" {
			sections = append(sections, rec.Offering)
		}
		if rec.Target != "" {
			sections = append(sections, rec.Target)
		}
		if rec.Benefits != "" {
			sections = append(sections, rec.Benefits)
		}
	} else {
		intro := name + " is a " + orDefault(sig.Industry, DefaultIndustry) + " company"
		if len(sig.Services) > 0 {
			intro += " that provides " + sig.Services[0]
		}
		sections = append(sections, intro+".")
		sections = append(sections,
			"They deliver professional business services designed to help companies achieve their objectives and enhance operational efficiency.",
			"They partner with businesses of all sizes that require professional services and strategic solutions for growth.",
			"They prioritize exceptional service quality, client satisfaction, and innovative solutions that drive business success.")
	}

	if sig.Email != "" {
		sections = append(sections, "For inquiries and partnerships, reach out to them at "+sig.Email+".")
	} else {
		sections = append(sections, "Visit their website for detailed contact information and to explore their comprehensive service offerings.")
	}
	return sections
}

func capN(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

// firstSegments keeps the first n semicolon-separated segments, dropping
// degenerate ones.
func firstSegments(joined string, n int) string {
	var kept []string
	for _, seg := range strings.Split(joined, ";") {
		seg = strings.TrimSpace(seg)
		if len(seg) > 5 {
			kept = append(kept, seg)
		}
		if len(kept) == n {
			break
		}
	}
	return strings.Join(kept, "; ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
