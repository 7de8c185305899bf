package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/provider/crawler"
	"leadscout-engine/internal/provider/directory"
)

func vocabs() []config.Vocabulary {
	return []config.Vocabulary{
		{Name: "technology", Any: []string{"booking engine", "channel manager", "pms"}},
		{Name: "buying_triggers", Any: []string{"expanding", "hiring"}},
		{Name: "pain_points", Any: []string{"spreadsheet", "overbooking"}},
	}
}

func TestAssembleFillsFromPageTextAndDirectory(t *testing.T) {
	rating := 4.5
	reviews := 120

	rec := Assemble(Sources{
		Query:        "Acme Hospitality",
		OfficialSite: NormalizeWebsite("acmehospitality.com"),
		Pages: []crawler.Page{
			{
				URL:      "https://acmehospitality.com",
				SiteName: "Acme Hospitality",
				Title:    "Acme Hospitality: Home",
				Text:     "Call us on +1 415 555 0100 or write to info@acmehospitality.com. We are expanding and use a booking engine.",
			},
		},
		Listing: &directory.Listing{
			Name:        "Acme Hospitality",
			Phone:       "+1 (415) 555-9999",
			Category:    "Hotel",
			Address:     directory.Address{City: "San Francisco", Country: "US"},
			Rating:      &rating,
			ReviewCount: &reviews,
		},
	}, vocabs())

	assert.Equal(t, "https://acmehospitality.com", rec.Website)
	assert.Equal(t, "Acme Hospitality", rec.CompanyName)

	// page text beats the directory listing for phone
	require.NotNil(t, rec.Phone)
	assert.Equal(t, "+14155550100", *rec.Phone)

	require.NotNil(t, rec.Email)
	assert.Equal(t, "info@acmehospitality.com", *rec.Email)

	// the page carried no rating, so the directory fills it
	require.NotNil(t, rec.Rating)
	assert.Equal(t, 4.5, *rec.Rating)
	require.NotNil(t, rec.ReviewCount)
	assert.Equal(t, 120, *rec.ReviewCount)

	require.NotNil(t, rec.City)
	assert.Equal(t, "San Francisco", *rec.City)
	require.NotNil(t, rec.Country)
	assert.Equal(t, "United States", *rec.Country)

	require.NotNil(t, rec.IndustrySegment)
	assert.Equal(t, "Hospitality", *rec.IndustrySegment)
	require.NotNil(t, rec.IndustryType)
	assert.Equal(t, "Hotel", *rec.IndustryType)

	assert.Equal(t, []string{"expanding"}, rec.Insights.BuyingTriggers)
	assert.Equal(t, []string{"booking engine"}, rec.Insights.Technology)
	assert.Empty(t, rec.Insights.PainPoints)
}

func TestAssembleStructuredBeatsDirectory(t *testing.T) {
	dirRating := 4.5
	dirReviews := 120

	html := `<html><head><script type="application/ld+json">
{"@type":"Hotel","aggregateRating":{"ratingValue":"4.3","reviewCount":87},
"address":{"addressLocality":"London","addressCountry":"GB"}}
</script></head><body></body></html>`

	rec := Assemble(Sources{
		Query:        "Riverside Hotel",
		OfficialSite: "https://riverside.example",
		Pages: []crawler.Page{
			{URL: "https://riverside.example", HTML: html, Text: "Welcome."},
		},
		Listing: &directory.Listing{
			Name:        "Riverside Hotel",
			Address:     directory.Address{City: "Westminster", Country: "GB"},
			Rating:      &dirRating,
			ReviewCount: &dirReviews,
		},
	}, nil)

	// JSON-LD wins; the listing must not overwrite it
	require.NotNil(t, rec.Rating)
	assert.Equal(t, 4.3, *rec.Rating)
	require.NotNil(t, rec.ReviewCount)
	assert.Equal(t, 87, *rec.ReviewCount)

	require.NotNil(t, rec.City)
	assert.Equal(t, "London", *rec.City)

	// both addresses show up as locations, structured first
	assert.Equal(t, []string{"London, United Kingdom", "Westminster, United Kingdom"}, rec.Locations)
}

func TestAssemblePartialSuccess(t *testing.T) {
	rating := 4.1

	rec := Assemble(Sources{
		Query: "Harbor Inn",
		Pages: []crawler.Page{
			{URL: "https://harborinn.example/contact", Failed: true, Cause: "navigation timeout"},
		},
		Listing: &directory.Listing{
			Name:    "Harbor Inn",
			Website: "harborinn.example",
			Phone:   "020 7946 0123",
			Address: directory.Address{City: "Portsmouth", Country: "GB"},
			Rating:  &rating,
		},
		Warnings: []string{"crawler: run failed"},
	}, nil)

	// the directory alone still yields a usable record
	assert.Equal(t, "Harbor Inn", rec.CompanyName)
	assert.Equal(t, "https://harborinn.example", rec.Website)
	require.NotNil(t, rec.Phone)
	assert.Equal(t, "02079460123", *rec.Phone)
	require.NotNil(t, rec.Rating)
	assert.Equal(t, 4.1, *rec.Rating)

	// failures are recorded, not fatal
	assert.Len(t, rec.Warnings, 2)

	// absent stays absent
	assert.Nil(t, rec.Email)
	assert.Nil(t, rec.ReviewCount)
}

func TestAssembleEmailDomainAffinity(t *testing.T) {
	rec := Assemble(Sources{
		Query:        "Zap Hotels",
		OfficialSite: "https://zaphotels.com",
		Pages: []crawler.Page{
			{
				URL:  "https://zaphotels.com/contact",
				Text: "Bookings via ota-partner@aggregator.example. Direct: stay@zaphotels.com. Personal: owner@gmail.com.",
			},
		},
	}, nil)

	require.NotNil(t, rec.Email)
	assert.Equal(t, "stay@zaphotels.com", *rec.Email)
}

func TestAssembleLinkedInFromStructuredSameAs(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
{"@type":"Organization","sameAs":["https://www.linkedin.com/company/acme-hospitality/posts?feedView=all"]}
</script></head><body></body></html>`

	rec := Assemble(Sources{
		Query:        "Acme Hospitality",
		OfficialSite: "https://acmehospitality.com",
		Pages: []crawler.Page{
			{URL: "https://acmehospitality.com", SiteName: "Acme Hospitality", HTML: html},
		},
	}, nil)

	require.NotNil(t, rec.LinkedInURL)
	assert.Equal(t, "https://www.linkedin.com/company/acme-hospitality", *rec.LinkedInURL)
}
