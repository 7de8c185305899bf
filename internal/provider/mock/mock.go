// Package mock provides deterministic in-process stand-ins for the three
// external actors, used when provider.use_mock is set and in tests. Output
// is fixed so the same query always yields the same candidates and record.
package mock

import (
	"context"
	"fmt"
	"strings"

	"leadscout-engine/internal/provider/crawler"
	"leadscout-engine/internal/provider/directory"
	"leadscout-engine/internal/provider/search"
)

type Search struct{}

func (Search) Search(_ context.Context, query string, max int) ([]search.Result, error) {
	slug := slugify(query)
	out := []search.Result{
		{
			Title:   query + " | Official Site",
			URL:     fmt.Sprintf("https://www.%s.example.com", slug),
			Snippet: fmt.Sprintf("%s official website. Rooms, rates and contact details.", query),
		},
		{
			Title:   query + " | LinkedIn",
			URL:     fmt.Sprintf("https://www.linkedin.com/company/%s", slug),
			Snippet: "Company page on LinkedIn.",
		},
		{
			Title:   query + " - Tripadvisor",
			URL:     fmt.Sprintf("https://www.tripadvisor.com/%s", slug),
			Snippet: "Reviews and photos.",
		},
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out, nil
}

type Crawler struct{}

func (Crawler) Crawl(_ context.Context, urls []string, maxPages int) ([]crawler.Page, error) {
	var pages []crawler.Page
	for i, u := range urls {
		if maxPages > 0 && i >= maxPages {
			break
		}
		host := hostOf(u)
		brand := strings.SplitN(host, ".", 2)[0]
		pages = append(pages, crawler.Page{
			URL:      u,
			SiteName: title(brand),
			Title:    title(brand) + " - Home",
			Text: fmt.Sprintf(
				"Welcome to %s. Contact us at info@%s or call +44 20 7946 0958. "+
					"We are expanding into new markets and hiring a revenue manager. "+
					"Our stack runs on a cloud PMS with a booking engine and channel manager.",
				title(brand), host,
			),
			HTML: fmt.Sprintf(`<html><head><script type="application/ld+json">`+
				`{"@type":"Hotel","aggregateRating":{"ratingValue":4.3,"reviewCount":87},`+
				`"address":{"addressLocality":"London","addressCountry":"GB"},`+
				`"sameAs":["https://www.linkedin.com/company/%s"]}`+
				`</script></head><body></body></html>`, brand),
		})
	}
	return pages, nil
}

type Directory struct{}

func (Directory) Lookup(_ context.Context, name, _ string) (*directory.Listing, error) {
	rating := 4.5
	reviews := 120
	return &directory.Listing{
		Name:        name,
		Phone:       "+44 20 7946 0958",
		Category:    "Hotel",
		Address:     directory.Address{City: "London", Country: "GB"},
		Rating:      &rating,
		ReviewCount: &reviews,
	}, nil
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "-")
	var b strings.Builder
	for _, r := range s {
		if r == '-' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hostOf(raw string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}
