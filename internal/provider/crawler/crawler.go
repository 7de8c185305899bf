// Package crawler requests a scrape of one or more pages through the
// hosted web-scraper actor and returns raw per-URL payloads. Extraction
// of emails, phones and structured blocks happens in internal/enrich; the
// crawler only moves bytes.
package crawler

import (
	"context"
	"encoding/json"
	"time"

	"leadscout-engine/internal/provider"
)

// Page is the raw payload for one crawled URL. A failed URL still yields a
// Page with Failed set, so partial batches survive.
type Page struct {
	URL      string `json:"url"`
	SiteName string `json:"site_name,omitempty"`
	Title    string `json:"title,omitempty"`
	Text     string `json:"text,omitempty"` // visible body text
	HTML     string `json:"html,omitempty"` // raw markup, for structured blocks
	Failed   bool   `json:"failed,omitempty"`
	Cause    string `json:"cause,omitempty"`
}

type Provider interface {
	Crawl(ctx context.Context, urls []string, maxPages int) ([]Page, error)
}

type Actor struct {
	client  *provider.Client
	actorID string
	timeout time.Duration
}

func NewActor(client *provider.Client, actorID string, timeout time.Duration) *Actor {
	return &Actor{client: client, actorID: actorID, timeout: timeout}
}

// pageFunction runs inside the actor's browser context. It captures the
// visible text plus the document markup and leaves all interpretation to
// the assembler.
const pageFunction = `async function pageFunction(context) {
  const safe = (fn, fallback) => { try { return fn(); } catch (e) { return fallback; } };
  return {
    pageUrl: location.href,
    title: safe(() => document.title, ''),
    siteName: safe(() => {
      const el = document.querySelector('meta[property="og:site_name"]');
      return el ? (el.content || '').trim() : '';
    }, ''),
    text: safe(() => document.body ? document.body.innerText : '', ''),
    html: safe(() => document.documentElement ? document.documentElement.outerHTML : '', ''),
  };
}`

type actorInput struct {
	StartURLs           []startURL `json:"startUrls"`
	MaxRequestsPerCrawl int        `json:"maxRequestsPerCrawl"`
	MaxConcurrency      int        `json:"maxConcurrency"`
	PageFunction        string     `json:"pageFunction"`
	UseChrome           bool       `json:"useChrome"`
	IgnoreSSLErrors     bool       `json:"ignoreSslErrors"`
	DownloadMedia       bool       `json:"downloadMedia"`
	DownloadCSS         bool       `json:"downloadCss"`
	MaxRequestRetries   int        `json:"maxRequestRetries"`
}

type startURL struct {
	URL string `json:"url"`
}

type crawlItem struct {
	PageURL      string `json:"pageUrl"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	SiteName     string `json:"siteName"`
	Text         string `json:"text"`
	HTML         string `json:"html"`
	ErrorMessage string `json:"errorMessage"`
}

func (a *Actor) Crawl(ctx context.Context, urls []string, maxPages int) ([]Page, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	starts := make([]startURL, 0, len(urls))
	for _, u := range urls {
		starts = append(starts, startURL{URL: u})
	}

	items, err := a.client.RunAndCollect(ctx, a.actorID, actorInput{
		StartURLs:           starts,
		MaxRequestsPerCrawl: maxPages,
		MaxConcurrency:      1,
		PageFunction:        pageFunction,
		UseChrome:           true,
		IgnoreSSLErrors:     true,
		MaxRequestRetries:   1,
	}, a.timeout, 0)
	if err != nil {
		return nil, err
	}

	var pages []Page
	for _, raw := range items {
		var it crawlItem
		if err := json.Unmarshal(raw, &it); err != nil {
			continue
		}
		u := it.PageURL
		if u == "" {
			u = it.URL
		}
		if u == "" {
			continue
		}
		if it.ErrorMessage != "" {
			pages = append(pages, Page{URL: u, Failed: true, Cause: it.ErrorMessage})
			continue
		}
		pages = append(pages, Page{
			URL:      u,
			SiteName: it.SiteName,
			Title:    it.Title,
			Text:     it.Text,
			HTML:     it.HTML,
		})
	}
	return pages, nil
}
