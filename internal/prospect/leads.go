package prospect

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/enrich"
	"leadscout-engine/internal/export"
	"leadscout-engine/internal/store"
)

// ValidationError carries per-field problems found before any provider
// call. The API layer turns it into a 400.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid query: " + strings.Join(e.Problems, "; ")
}

// ValidateLeadQuery checks the filter set without touching providers.
func ValidateLeadQuery(q domain.LeadQuery) error {
	var problems []string
	if strings.TrimSpace(q.IndustryFocus) == "" {
		problems = append(problems, "industry_focus is required")
	}
	if q.CompanySizeMin < 0 || q.CompanySizeMax < 0 {
		problems = append(problems, "company size bounds must not be negative")
	}
	if q.CompanySizeMax > 0 && q.CompanySizeMin > q.CompanySizeMax {
		problems = append(problems, fmt.Sprintf("company_size_min %d exceeds company_size_max %d", q.CompanySizeMin, q.CompanySizeMax))
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// LeadsSearch discovers company candidates matching the filter set. One
// search per country keeps result provenance obvious; aggregator hosts are
// dropped so candidates point at real company sites.
func (e *Engine) LeadsSearch(ctx context.Context, q domain.LeadQuery) ([]domain.CompanyCandidate, error) {
	if err := ValidateLeadQuery(q); err != nil {
		return nil, err
	}
	cfg := e.Cfg()

	countries := q.Countries
	if len(countries) == 0 {
		countries = []string{""}
	}

	seen := map[string]bool{}
	var out []domain.CompanyCandidate
	var firstErr error
	inBounds := sizeFilter(q.CompanySizeMin, q.CompanySizeMax)
	for _, country := range countries {
		country = enrich.ExpandCountry(country)
		query := buildLeadQuery(q.IndustryFocus, country, q.CompanySizeMin, q.CompanySizeMax)

		results, err := e.Search.Search(ctx, query, cfg.Provider.MaxResults)
		if err != nil {
			// one failed country shouldn't sink the rest
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		for _, r := range results {
			if r.URL == "" || enrich.IsAggregator(r.URL) {
				continue
			}
			site := enrich.NormalizeWebsite(r.URL)
			key := hostOf(site)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			cand := domain.CompanyCandidate{
				Name:    enrich.GuessCompanyName("", r.Title),
				Website: site,
				Country: country,
				SizeEst: sizeFromText(r.Snippet),
				Source:  "search",
			}
			if !inBounds(cand) {
				continue
			}
			out = append(out, cand)
		}
	}
	if len(out) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// sizeFilter enforces the company-size bounds when a candidate carries an
// estimate. Search snippets rarely do; unknown (zero) always passes.
func sizeFilter(min, max int) func(domain.CompanyCandidate) bool {
	return func(c domain.CompanyCandidate) bool {
		if c.SizeEst <= 0 {
			return true
		}
		if min > 0 && c.SizeEst < min {
			return false
		}
		if max > 0 && c.SizeEst > max {
			return false
		}
		return true
	}
}

// employeesRe catches "120 employees" / "1,200+ employees" in snippets.
var employeesRe = regexp.MustCompile(`(?i)([\d,]+)\s*\+?\s*employees`)

func sizeFromText(text string) int {
	m := employeesRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// ExportCandidates writes a discovered-candidates snapshot so lead
// searches download the same way lookups do. Candidates map onto thin
// records; enrichment fills the rest later.
func (e *Engine) ExportCandidates(ctx context.Context, label string, cands []domain.CompanyCandidate) (export.Snapshot, error) {
	records := make([]domain.EnrichmentRecord, 0, len(cands))
	for _, c := range cands {
		rec := domain.EnrichmentRecord{
			Query:       label,
			CompanyName: c.Name,
			Website:     c.Website,
		}
		if c.Country != "" {
			country := c.Country
			rec.Country = &country
		}
		records = append(records, rec)
	}

	snap, err := e.Exporter.Write("leads", records)
	if err != nil {
		return export.Snapshot{}, err
	}
	if e.DB != nil {
		if err := store.InsertSnapshot(ctx, e.DB.Pool, snap.Name, snap.Format, label, snap.Count, snap.CreatedAt); err != nil {
			log.Printf("level=warn msg=\"snapshot index write failed\" name=%s err=%v", snap.Name, err)
		}
	}
	return snap, nil
}

func buildLeadQuery(industry, country string, sizeMin, sizeMax int) string {
	parts := []string{industry, "companies"}
	if country != "" {
		parts = append(parts, "in "+country)
	}
	if sizeMax > 0 {
		parts = append(parts, fmt.Sprintf("%d-%d employees", sizeMin, sizeMax))
	} else if sizeMin > 0 {
		parts = append(parts, fmt.Sprintf("%d+ employees", sizeMin))
	}
	return strings.Join(parts, " ")
}
