// Package search issues a query against the external search actor and
// returns an ordered list of result links.
package search

import (
	"context"
	"encoding/json"
	"time"

	"leadscout-engine/internal/provider"
)

// Result is one search hit, in the provider's ranking order.
type Result struct {
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	Snippet   string   `json:"snippet"`
	SiteLinks []string `json:"site_links,omitempty"`
}

type Provider interface {
	Search(ctx context.Context, query string, max int) ([]Result, error)
}

// Actor runs the hosted search scraper.
type Actor struct {
	client  *provider.Client
	actorID string
	timeout time.Duration
}

func NewActor(client *provider.Client, actorID string, timeout time.Duration) *Actor {
	return &Actor{client: client, actorID: actorID, timeout: timeout}
}

type actorInput struct {
	Queries                  string `json:"queries"`
	MaxPagesPerQuery         int    `json:"maxPagesPerQuery"`
	ResultsPerPage           int    `json:"resultsPerPage"`
	IncludeUnfilteredResults bool   `json:"includeUnfilteredResults"`
}

// siteLink tolerates both spellings the actor family emits.
type siteLink struct {
	URL string `json:"url"`
}

type organicResult struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Snippet     string     `json:"snippet"`
	Description string     `json:"description"`
	Sitelinks   []siteLink `json:"sitelinks"`
	SiteLinks   []siteLink `json:"siteLinks"`
}

type searchItem struct {
	organicResult
	OrganicResults []organicResult `json:"organicResults"`
}

func (a *Actor) Search(ctx context.Context, query string, max int) ([]Result, error) {
	if max < 1 {
		max = 1
	}
	perPage := max
	if perPage > 10 {
		perPage = 10
	}

	items, err := a.client.RunAndCollect(ctx, a.actorID, actorInput{
		Queries:          query,
		MaxPagesPerQuery: 1,
		ResultsPerPage:   perPage,
	}, a.timeout, 0)
	if err != nil {
		return nil, err
	}

	var out []Result
	for _, raw := range items {
		var it searchItem
		if err := json.Unmarshal(raw, &it); err != nil {
			continue
		}

		// Newer builds wrap hits in organicResults; older ones emit flat items.
		if len(it.OrganicResults) > 0 {
			for _, r := range it.OrganicResults {
				if res, ok := toResult(r); ok {
					out = append(out, res)
				}
			}
			continue
		}
		if res, ok := toResult(it.organicResult); ok {
			out = append(out, res)
		}
	}

	if len(out) > max {
		out = out[:max]
	}
	return out, nil
}

func toResult(r organicResult) (Result, bool) {
	if r.URL == "" {
		return Result{}, false
	}
	snippet := r.Snippet
	if snippet == "" {
		snippet = r.Description
	}
	links := r.Sitelinks
	if len(links) == 0 {
		links = r.SiteLinks
	}
	var urls []string
	for _, l := range links {
		if l.URL != "" {
			urls = append(urls, l.URL)
		}
	}
	return Result{Title: r.Title, URL: r.URL, Snippet: snippet, SiteLinks: urls}, true
}
