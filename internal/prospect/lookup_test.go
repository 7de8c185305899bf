package prospect

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/export"
	"leadscout-engine/internal/provider/crawler"
	"leadscout-engine/internal/provider/directory"
	"leadscout-engine/internal/provider/mock"
	"leadscout-engine/internal/provider/search"
)

type searchFunc func(ctx context.Context, query string, max int) ([]search.Result, error)

func (f searchFunc) Search(ctx context.Context, query string, max int) ([]search.Result, error) {
	return f(ctx, query, max)
}

type crawlFunc func(ctx context.Context, urls []string, maxPages int) ([]crawler.Page, error)

func (f crawlFunc) Crawl(ctx context.Context, urls []string, maxPages int) ([]crawler.Page, error) {
	return f(ctx, urls, maxPages)
}

type lookupFunc func(ctx context.Context, name, locationHint string) (*directory.Listing, error)

func (f lookupFunc) Lookup(ctx context.Context, name, locationHint string) (*directory.Listing, error) {
	return f(ctx, name, locationHint)
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.Provider.MaxResults = 5
	cfg.Provider.MaxCrawlPages = 6
	cfg.Insights.Vocabularies = []config.Vocabulary{
		{Name: "technology", Any: []string{"booking engine"}},
		{Name: "buying_triggers", Any: []string{"expanding", "hiring"}},
		{Name: "pain_points", Any: []string{"spreadsheet"}},
	}
	cfg.Contacts.Roles = []string{"CEO"}
	return cfg
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := testConfig()
	return &Engine{
		Search:    mock.Search{},
		Crawler:   mock.Crawler{},
		Directory: mock.Directory{},
		Exporter:  export.NewWriter(t.TempDir(), "json"),
		Hub:       events.NewHub(),
		Cfg:       func() config.Config { return cfg },
	}
}

func TestLookupFullPipeline(t *testing.T) {
	e := testEngine(t)

	res, err := e.Lookup(context.Background(), "req-1", "Acme Hospitality", "")
	require.NoError(t, err)

	rec := res.Record
	assert.Equal(t, "Acme Hospitality", rec.Query)
	assert.Equal(t, "https://www.acme-hospitality.example.com", rec.Website)

	require.NotNil(t, rec.Email)
	assert.True(t, strings.HasPrefix(*rec.Email, "info@"))
	require.NotNil(t, rec.Phone)
	assert.Equal(t, "+442079460958", *rec.Phone)
	require.NotNil(t, rec.LinkedInURL)
	assert.Contains(t, *rec.LinkedInURL, "linkedin.com/company/")

	// structured JSON-LD rating beats the directory listing
	require.NotNil(t, rec.Rating)
	assert.Equal(t, 4.3, *rec.Rating)
	require.NotNil(t, rec.ReviewCount)
	assert.Equal(t, 87, *rec.ReviewCount)

	assert.NotEmpty(t, rec.Insights.Technology)
	assert.NotEmpty(t, rec.Insights.BuyingTriggers)

	// every run lands one export file
	assert.NotEmpty(t, res.Snapshot.Name)
	assert.Equal(t, 1, res.Snapshot.Count)
}

func TestLookupCrawlerFailureIsPartial(t *testing.T) {
	e := testEngine(t)
	e.Crawler = crawlFunc(func(ctx context.Context, urls []string, maxPages int) ([]crawler.Page, error) {
		return nil, errors.New("actor run failed")
	})

	res, err := e.Lookup(context.Background(), "req-2", "Harbor Inn", "Portsmouth")
	require.NoError(t, err)

	rec := res.Record
	// the directory listing alone still fills the record
	require.NotNil(t, rec.Rating)
	assert.Equal(t, 4.5, *rec.Rating)
	require.NotNil(t, rec.ReviewCount)
	assert.Equal(t, 120, *rec.ReviewCount)
	require.NotNil(t, rec.Phone)

	require.NotEmpty(t, rec.Warnings)
	assert.Contains(t, rec.Warnings[0], "crawler")
}

func TestLookupAllProvidersEmpty(t *testing.T) {
	e := testEngine(t)
	e.Search = searchFunc(func(ctx context.Context, query string, max int) ([]search.Result, error) {
		return nil, errors.New("search down")
	})
	e.Crawler = crawlFunc(func(ctx context.Context, urls []string, maxPages int) ([]crawler.Page, error) {
		return nil, errors.New("crawler down")
	})
	e.Directory = lookupFunc(func(ctx context.Context, name, locationHint string) (*directory.Listing, error) {
		return nil, errors.New("directory down")
	})

	_, err := e.Lookup(context.Background(), "req-3", "Ghost Co", "")
	require.ErrorIs(t, err, ErrNothingFound)
}

func TestCrawlTargets(t *testing.T) {
	got := crawlTargets("https://acme.example/", []string{
		"https://acme.example/contact", // duplicate of an expanded path
		"https://elsewhere.example/page",
		"https://acme.example/rooms",
	}, 0)

	assert.Equal(t, []string{
		"https://acme.example",
		"https://acme.example/contact",
		"https://acme.example/contact-us",
		"https://acme.example/about",
		"https://acme.example/about-us",
		"https://acme.example/locations",
		"https://acme.example/team",
		"https://acme.example/leadership",
		"https://acme.example/rooms",
	}, got)

	assert.Len(t, crawlTargets("https://acme.example", nil, 3), 3)
	assert.Nil(t, crawlTargets("", nil, 5))
}

func TestLookupWithSiteSkipsSearch(t *testing.T) {
	e := testEngine(t)
	e.Search = searchFunc(func(ctx context.Context, query string, max int) ([]search.Result, error) {
		// only the linkedin-hint search may land here
		require.Contains(t, query, "site:linkedin.com/company")
		return nil, nil
	})

	res, err := e.LookupWithSite(context.Background(), "req-4", "Acme Hospitality", "", "acmehospitality.com")
	require.NoError(t, err)
	assert.Equal(t, "https://acmehospitality.com", res.Record.Website)
}

func TestSizeFromText(t *testing.T) {
	assert.Equal(t, 120, sizeFromText("Boutique chain with 120 employees across 4 sites."))
	assert.Equal(t, 1200, sizeFromText("1,200+ Employees"))
	assert.Equal(t, 0, sizeFromText("no headcount here"))
}

func TestLeadsSearchEnforcesSizeBounds(t *testing.T) {
	e := testEngine(t)
	e.Search = searchFunc(func(ctx context.Context, query string, max int) ([]search.Result, error) {
		return []search.Result{
			{Title: "Tiny Hotels", URL: "https://tiny.example", Snippet: "A team of 8 employees."},
			{Title: "Mid Hotels", URL: "https://mid.example", Snippet: "Around 80 employees."},
			{Title: "Mystery Hotels", URL: "https://mystery.example", Snippet: "No headcount published."},
		}, nil
	})

	got, err := e.LeadsSearch(context.Background(), domain.LeadQuery{
		IndustryFocus:  "hotels",
		CompanySizeMin: 20,
		CompanySizeMax: 200,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Mid Hotels", got[0].Name)
	// unknown size passes through for later enrichment
	assert.Equal(t, "Mystery Hotels", got[1].Name)
}

func TestExportCandidatesWritesSnapshot(t *testing.T) {
	e := testEngine(t)
	snap, err := e.ExportCandidates(context.Background(), "hotels", []domain.CompanyCandidate{
		{Name: "Acme", Website: "https://acme.example", Country: "United Kingdom", Source: "search"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Count)
	assert.True(t, strings.HasPrefix(snap.Name, "leads_"))
}

func TestValidateLeadQuery(t *testing.T) {
	assert.Error(t, ValidateLeadQuery(domain.LeadQuery{}))
	assert.Error(t, ValidateLeadQuery(domain.LeadQuery{IndustryFocus: "hotels", CompanySizeMin: 50, CompanySizeMax: 10}))
	assert.NoError(t, ValidateLeadQuery(domain.LeadQuery{IndustryFocus: "hotels", CompanySizeMin: 10, CompanySizeMax: 50}))
}

func TestLeadsSearchFiltersAggregators(t *testing.T) {
	e := testEngine(t)
	e.Search = searchFunc(func(ctx context.Context, query string, max int) ([]search.Result, error) {
		assert.Contains(t, query, "boutique hotels")
		return []search.Result{
			{Title: "Acme Hotels | Official Site", URL: "https://acmehotels.example"},
			{Title: "Top 10 hotels - Tripadvisor", URL: "https://www.tripadvisor.com/list"},
			{Title: "Acme Hotels again", URL: "https://www.acmehotels.example/about"},
		}, nil
	})

	got, err := e.LeadsSearch(context.Background(), domain.LeadQuery{
		IndustryFocus: "boutique hotels",
		Countries:     []string{"GB"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme Hotels", got[0].Name)
	assert.Equal(t, "https://acmehotels.example", got[0].Website)
	assert.Equal(t, "United Kingdom", got[0].Country)
	assert.Equal(t, "search", got[0].Source)
}

func TestLeadsSearchRejectsInvalidBeforeProviders(t *testing.T) {
	e := testEngine(t)
	e.Search = searchFunc(func(ctx context.Context, query string, max int) ([]search.Result, error) {
		t.Fatal("provider must not be called for an invalid query")
		return nil, nil
	})

	_, err := e.LeadsSearch(context.Background(), domain.LeadQuery{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestContactsParsesProfiles(t *testing.T) {
	e := testEngine(t)
	e.Search = searchFunc(func(ctx context.Context, query string, max int) ([]search.Result, error) {
		return []search.Result{
			{Title: "Jane Doe – CEO – Acme | LinkedIn", URL: "https://www.linkedin.com/in/jane-doe"},
			{Title: "Acme company page", URL: "https://www.linkedin.com/company/acme"},
		}, nil
	})

	got, err := e.Contacts(context.Background(), "Acme", []string{"CEO"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Jane Doe", got[0].Name)
	assert.Equal(t, "CEO", got[0].Role)
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", got[0].LinkedInURL)
}

func TestContactsRequiresCompany(t *testing.T) {
	e := testEngine(t)
	_, err := e.Contacts(context.Background(), "  ", nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestParsePersonTitle(t *testing.T) {
	cases := []struct {
		in, name, role string
	}{
		{"Jane Doe – CEO – Acme | LinkedIn", "Jane Doe", "CEO"},
		{"John Smith - Head of Sales | LinkedIn", "John Smith", "Head of Sales"},
		{"Solo Name | LinkedIn", "Solo Name", ""},
		{"", "", ""},
	}
	for _, c := range cases {
		name, role := parsePersonTitle(c.in)
		assert.Equal(t, c.name, name, "input %q", c.in)
		assert.Equal(t, c.role, role, "input %q", c.in)
	}
}
