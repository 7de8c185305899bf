package domain

// LeadQuery is the input for a filtered multi-criteria lead search.
// Immutable per request; handlers validate before any provider call.
type LeadQuery struct {
	IndustryFocus  string   `json:"industry_focus"`
	CompanySizeMin int      `json:"company_size_min"`
	CompanySizeMax int      `json:"company_size_max"`
	Countries      []string `json:"countries"`
	Roles          []string `json:"roles"`
}

// CompanyCandidate is one discovered company prior to enrichment.
// Fields may be incomplete; Source records where the candidate came from.
type CompanyCandidate struct {
	Name        string `json:"name"`
	Website     string `json:"website,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	SizeEst     int    `json:"size_estimate,omitempty"`
	RevenueEst  string `json:"revenue_estimate,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Source      string `json:"source"`
}

// PersonLead is a contact associated with a company. Zero or more per
// company; callers surface the first-ranked match first.
type PersonLead struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	LinkedInURL string `json:"linkedin_url"`
}
