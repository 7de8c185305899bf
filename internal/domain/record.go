package domain

// EnrichmentRecord is the canonical normalized output of one enrichment run.
// Optional fields are pointers: nil means "absent", which is distinct from an
// empty string. Merging never replaces a non-nil field with a lower-priority
// source (see internal/enrich).
type EnrichmentRecord struct {
	Query       string   `json:"query"`
	CompanyName string   `json:"company_name,omitempty"`
	Website     string   `json:"website,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	LinkedInURL *string  `json:"linkedin_url,omitempty"`
	City        *string  `json:"city,omitempty"`
	Country     *string  `json:"country,omitempty"`
	Locations   []string `json:"locations,omitempty"`

	IndustrySegment *string `json:"industry_segment,omitempty"`
	IndustryType    *string `json:"industry_type,omitempty"`

	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"review_count,omitempty"`

	Insights InsightTags `json:"insights"`

	// Causes of partial failures (crawler down, directory empty, ...).
	// Informational only; a non-empty list does not make the record invalid.
	Warnings []string `json:"warnings,omitempty"`
}

// InsightTags are keyword-derived signals from crawled text. Each list is
// deduplicated and ordered by first occurrence in the source text.
type InsightTags struct {
	Technology     []string `json:"technology"`
	BuyingTriggers []string `json:"buying_triggers"`
	PainPoints     []string `json:"pain_points"`
}
