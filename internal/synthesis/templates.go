package synthesis

import "strings"

// TemplateRecord is a curated per-company description consulted before
// generic extraction. Records live in configuration so adding a company
// never touches code.
type TemplateRecord struct {
	Pattern  string `mapstructure:"pattern"`
	Name     string `mapstructure:"name"`
	Industry string `mapstructure:"industry"`
	Offering string `mapstructure:"offering"`
	Target   string `mapstructure:"target"`
	Benefits string `mapstructure:"benefits"`
}

// TemplateTable matches hosts against record patterns in declaration order.
type TemplateTable struct {
	records []TemplateRecord
}

// NewTemplateTable builds a table from configured records.
func NewTemplateTable(records []TemplateRecord) *TemplateTable {
	return &TemplateTable{records: records}
}

// Lookup returns the first record whose pattern is a substring of the host.
func (t *TemplateTable) Lookup(host string) (TemplateRecord, bool) {
	if t == nil {
		return TemplateRecord{}, false
	}
	host = strings.ToLower(host)
	for _, rec := range t.records {
		if rec.Pattern != "" && strings.Contains(host, rec.Pattern) {
			return rec, true
		}
	}
	return TemplateRecord{}, false
}

// DefaultTemplates covers well-known platforms whose marketing pages carry
// little extractable prose.
func DefaultTemplates() []TemplateRecord {
	return []TemplateRecord{
		{
			Pattern:  "github",
			Industry: "software development platform",
			Offering: "Their platform offers comprehensive development tools including code hosting, version control, collaborative features, project management capabilities, and automated CI/CD pipelines.",
			Target:   "Their platform serves software developers, engineering teams, and organizations seeking efficient code collaboration and project management solutions.",
			Benefits: "Key advantages include advanced collaboration capabilities, enterprise-grade security, seamless integrations, and access to the world's largest developer community.",
		},
		{
			Pattern:  "nytimes",
			Industry: "news and media",
			Offering: "Their services encompass breaking news coverage, investigative journalism, editorial content, and multimedia reporting across politics, business, technology, and culture.",
			Target:   "Their audience includes readers, professionals, and decision-makers who value reliable news coverage and in-depth analysis across multiple sectors.",
			Benefits: "Their strengths lie in award-winning journalism, comprehensive global coverage, expert analysis, and trusted reporting across diverse topics.",
		},
		{
			Pattern:  "shopify",
			Industry: "e-commerce platform",
			Offering: "Their platform provides e-commerce solutions including online store creation, payment processing, inventory management, marketing tools, and analytics for businesses of all sizes.",
			Target:   "They serve entrepreneurs, small businesses, and enterprises looking to establish or expand their online retail presence.",
			Benefits: "Key advantages include easy setup, comprehensive e-commerce tools, mobile optimization, and extensive app marketplace for business growth.",
		},
		{
			Pattern:  "canva",
			Industry: "design and creative tools",
			Offering: "Their platform offers design tools including templates, graphics, photo editing, video creation, and collaboration features for individuals and businesses.",
			Target:   "They cater to individuals, small businesses, educators, and marketing professionals who need accessible design tools.",
			Benefits: "Key advantages include intuitive design tools, extensive template library, collaborative features, and accessibility for non-designers.",
		},
		{
			Pattern:  "notion",
			Industry: "productivity and collaboration",
			Offering: "Their workspace combines notes, databases, wikis, and project management tools in one unified platform for teams and individuals.",
			Target:   "They serve teams, startups, and organizations seeking unified workspace solutions for productivity and collaboration.",
			Benefits: "Key advantages include unified workspace, flexible organization, powerful search capabilities, and seamless team collaboration.",
		},
		{
			Pattern:  "figma",
			Industry: "design and prototyping",
			Offering: "Their platform provides design and prototyping tools including collaborative design, component libraries, and developer handoff features.",
			Target:   "They target design teams, product managers, and developers who need collaborative design and prototyping tools.",
			Benefits: "Key advantages include real-time collaboration, cloud-based design, component libraries, and seamless developer handoff.",
		},
		{
			Pattern:  "airbnb",
			Industry: "travel and accommodation",
			Offering: "Their platform connects hosts with travelers, offering unique accommodations, experiences, and travel services worldwide.",
			Target:   "They serve travelers seeking unique accommodations and hosts looking to monetize their properties or experiences.",
			Benefits: "Key advantages include unique accommodations, global reach, secure booking system, and comprehensive host support.",
		},
		{
			Pattern:  "spotify",
			Industry: "music streaming",
			Offering: "Their service provides music streaming, podcast hosting, playlist creation, and audio content discovery across multiple devices.",
			Target:   "They cater to music lovers, podcast listeners, and content creators seeking comprehensive audio streaming services.",
			Benefits: "Key advantages include vast music library, personalized recommendations, offline listening, and cross-platform accessibility.",
		},
		{
			Pattern:  "ilovepdf",
			Industry: "document processing",
			Offering: "Their suite includes PDF conversion tools, document editing capabilities, page organization features, and file compression utilities for various formats.",
			Target:   "Their tools cater to individuals, professionals, and businesses requiring efficient PDF document management and conversion capabilities.",
			Benefits: "Key advantages include user-friendly interfaces, rapid processing speeds, secure file handling, and comprehensive format support.",
		},
	}
}
