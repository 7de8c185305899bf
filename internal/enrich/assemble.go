// Package enrich consolidates raw scrape payloads from the crawler and
// directory providers into one EnrichmentRecord. Fill order per field is
// fixed: explicit structured data, then page-text pattern matches, then the
// directory listing, then absent. A populated field is never overwritten by
// a lower-priority source.
package enrich

import (
	"strings"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/provider/crawler"
	"leadscout-engine/internal/provider/directory"
)

// Sources is everything one enrichment run gathered. Any piece may be
// missing; a missing piece degrades the record, it never fails it.
type Sources struct {
	Query        string
	OfficialSite string         // picked from search results, may be ""
	Pages        []crawler.Page // crawler payloads, failed entries included
	Listing      *directory.Listing
	LinkedInHint string   // from the targeted linkedin search
	Warnings     []string // provider-level failure causes
}

func Assemble(src Sources, vocabs []config.Vocabulary) domain.EnrichmentRecord {
	rec := domain.EnrichmentRecord{
		Query:    src.Query,
		Warnings: append([]string(nil), src.Warnings...),
	}

	var (
		structEmails []string
		structPhones []string
		textEmails   []string
		textPhones   []string
		linkedins    []string
		schemaType   string
		locations    []string
		locSeen      = map[string]bool{}
		allText      strings.Builder
	)

	addLocation := func(parts ...string) {
		var kept []string
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			return
		}
		loc := strings.Join(kept, ", ")
		if !locSeen[loc] {
			locSeen[loc] = true
			locations = append(locations, loc)
		}
	}

	if src.LinkedInHint != "" {
		linkedins = append(linkedins, src.LinkedInHint)
	}

	// -------- crawled pages: structured blocks first, then text --------
	for _, page := range src.Pages {
		if page.Failed {
			rec.Warnings = append(rec.Warnings, "crawl "+page.URL+": "+page.Cause)
			continue
		}

		sd := ParseStructured(page.HTML)

		if rec.Rating == nil {
			rec.Rating = sd.Rating
		}
		if rec.ReviewCount == nil {
			rec.ReviewCount = sd.ReviewCount
		}
		if rec.City == nil && sd.City != "" {
			rec.City = ptr(sd.City)
		}
		if rec.Country == nil && sd.Country != "" {
			rec.Country = ptr(ExpandCountry(sd.Country))
		}
		if schemaType == "" {
			schemaType = sd.SchemaType
		}
		addLocation(sd.City, sd.Region, ExpandCountry(sd.Country))

		structEmails = append(structEmails, sd.Emails...)
		structPhones = append(structPhones, sd.Telephones...)
		structPhones = append(structPhones, sd.TelAnchors...)
		linkedins = append(linkedins, sd.LinkedIns...)

		textEmails = append(textEmails, ExtractEmails(page.Text)...)
		textPhones = append(textPhones, ExtractPhones(page.Text)...)

		if rec.CompanyName == "" {
			rec.CompanyName = GuessCompanyName(page.SiteName, page.Title)
		}

		allText.WriteString(page.Text)
		allText.WriteString("\n")
	}

	// -------- website --------
	rec.Website = src.OfficialSite
	if rec.Website == "" && src.Listing != nil && src.Listing.Website != "" {
		rec.Website = NormalizeWebsite(src.Listing.Website)
	}

	// -------- email: structured mailtos outrank text matches; domain
	// affinity to the official site outranks both --------
	var emailCandidates []string
	seenEmail := map[string]bool{}
	for _, e := range append(append([]string{}, structEmails...), textEmails...) {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || seenEmail[e] || !ValidEmail(e) {
			continue
		}
		seenEmail[e] = true
		emailCandidates = append(emailCandidates, e)
	}
	if ranked := RankEmails(emailCandidates, rec.Website); len(ranked) > 0 {
		rec.Email = ptr(ranked[0])
	}

	// -------- phone --------
	phones := MergePhones(structPhones, textPhones)
	if len(phones) == 0 && src.Listing != nil {
		phones = MergePhones([]string{src.Listing.Phone})
	}
	if len(phones) > 0 {
		rec.Phone = ptr(phones[0])
	}

	// -------- linkedin --------
	if best := PickLinkedIn(linkedins, rec.CompanyName); best != "" {
		rec.LinkedInURL = ptr(best)
	}

	// -------- directory fallbacks --------
	if src.Listing != nil {
		l := src.Listing
		if rec.CompanyName == "" {
			rec.CompanyName = strings.TrimSpace(l.Name)
		}
		if rec.Rating == nil {
			rec.Rating = l.Rating
		}
		if rec.ReviewCount == nil {
			rec.ReviewCount = l.ReviewCount
		}
		if rec.City == nil && l.Address.City != "" {
			rec.City = ptr(l.Address.City)
		}
		if rec.Country == nil && l.Address.Country != "" {
			rec.Country = ptr(ExpandCountry(l.Address.Country))
		}
		addLocation(l.Address.City, l.Address.Region, ExpandCountry(l.Address.Country))
	}

	rec.Locations = locations

	// -------- industry --------
	category := ""
	if src.Listing != nil {
		category = src.Listing.Category
	}
	if segment, typ := ClassifyIndustry(category, schemaType); segment != "" || typ != "" {
		if segment != "" {
			rec.IndustrySegment = ptr(segment)
		}
		if typ != "" {
			rec.IndustryType = ptr(typ)
		}
	}

	rec.Insights = DeriveInsights(allText.String(), vocabs)

	return rec
}

func ptr[T any](v T) *T { return &v }
