// Package prospect orchestrates the three external providers into lead
// lookups: search finds the official site, the crawler reads it, the
// directory actor fills what the site didn't say, and enrich merges it
// all into one record.
package prospect

import (
	"context"
	"log"
	"strings"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/export"
	"leadscout-engine/internal/provider/crawler"
	"leadscout-engine/internal/provider/directory"
	"leadscout-engine/internal/provider/search"
	"leadscout-engine/internal/store"
)

type Engine struct {
	Search    search.Provider
	Crawler   crawler.Provider
	Directory directory.Provider

	DB       *store.DB
	Exporter *export.Writer
	Hub      *events.Hub

	// Cfg returns the current config snapshot; hot-reloaded by the API.
	Cfg func() config.Config
}

func (e *Engine) publish(reqID, typ string, data any) {
	if e.Hub != nil {
		e.Hub.Publish(events.MakeEvent(reqID, typ, 1, data))
	}
}

// cachedSite returns the remembered official website for a company, or "".
func (e *Engine) cachedSite(ctx context.Context, company string) string {
	if e.DB == nil {
		return ""
	}
	site, err := store.GetCachedSite(ctx, e.DB.Pool, company)
	if err != nil {
		log.Printf("level=warn msg=\"site cache read failed\" company=%q err=%v", company, err)
		return ""
	}
	return site
}

func (e *Engine) rememberSite(ctx context.Context, company, site string) {
	if e.DB == nil || company == "" || site == "" {
		return
	}
	if err := store.UpsertCachedSite(ctx, e.DB.Pool, company, site); err != nil {
		log.Printf("level=warn msg=\"site cache write failed\" company=%q err=%v", company, err)
	}
}

// crawlTargets expands an official site into the pages worth reading:
// the landing page plus the usual contact/about/locations paths, plus any
// sitelinks the search provider surfaced on the same host. Order is
// preserved and duplicates collapse, so the crawl budget goes to distinct
// pages.
func crawlTargets(site string, siteLinks []string, maxPages int) []string {
	if site == "" {
		return nil
	}
	site = strings.TrimRight(site, "/")

	candidates := []string{site}
	for _, p := range []string{"/contact", "/contact-us", "/about", "/about-us", "/locations", "/team", "/leadership"} {
		candidates = append(candidates, site+p)
	}
	for _, l := range siteLinks {
		if sameHost(site, l) {
			candidates = append(candidates, strings.TrimRight(l, "/"))
		}
	}

	seen := map[string]bool{}
	var out []string
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if maxPages > 0 && len(out) >= maxPages {
			break
		}
	}
	return out
}

func sameHost(a, b string) bool {
	return hostOf(a) != "" && hostOf(a) == hostOf(b)
}

func hostOf(raw string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}

func firstURL(results []search.Result) string {
	for _, r := range results {
		if r.URL != "" {
			return r.URL
		}
	}
	return ""
}

func warnf(warnings []string, provider string, err error) []string {
	return append(warnings, provider+": "+err.Error())
}
