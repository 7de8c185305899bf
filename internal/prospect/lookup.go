package prospect

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/enrich"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/export"
	"leadscout-engine/internal/provider/crawler"
	"leadscout-engine/internal/provider/directory"
	"leadscout-engine/internal/store"
)

// LookupResult is the outcome of one enrichment run: the merged record
// plus the snapshot file it was exported to.
type LookupResult struct {
	Record   domain.EnrichmentRecord `json:"record"`
	Snapshot export.Snapshot         `json:"snapshot"`
}

// ErrNothingFound means every provider came back empty: no site, no
// pages, no listing. Partial results never produce this.
var ErrNothingFound = errors.New("no provider returned anything for the query")

// Lookup runs the whole pipeline for one free-form company query:
// search, crawl, directory, merge, export. Providers run one after the
// other; a provider failure is downgraded to a record warning as long as
// at least one source produced data.
func (e *Engine) Lookup(ctx context.Context, reqID, query, locationHint string) (LookupResult, error) {
	return e.lookup(ctx, reqID, query, locationHint, "")
}

// LookupWithSite is Lookup with the official website already known; the
// search step is skipped for the site (the linkedin-hint search still runs).
func (e *Engine) LookupWithSite(ctx context.Context, reqID, query, locationHint, site string) (LookupResult, error) {
	return e.lookup(ctx, reqID, query, locationHint, site)
}

func (e *Engine) lookup(ctx context.Context, reqID, query, locationHint, site string) (LookupResult, error) {
	cfg := e.Cfg()
	query = strings.TrimSpace(query)

	started := time.Now()
	e.publish(reqID, events.TypeRunStarted, map[string]string{"query": query})
	log.Printf("level=info msg=\"lookup started\" request_id=%s query=%q", reqID, query)

	var warnings []string

	// -------- search: find the official site --------
	if site != "" {
		site = enrich.NormalizeWebsite(site)
	} else {
		site = e.cachedSite(ctx, query)
	}
	var siteLinks []string
	if site == "" {
		results, err := e.Search.Search(ctx, query, cfg.Provider.MaxResults)
		if err != nil {
			warnings = warnf(warnings, "search", err)
			e.publish(reqID, events.TypeProviderFailed, map[string]string{"provider": "search", "cause": err.Error()})
		} else {
			site = enrich.PickOfficialSite(results)
			for _, r := range results {
				siteLinks = append(siteLinks, r.SiteLinks...)
			}
			e.publish(reqID, events.TypeProviderDone, map[string]any{"provider": "search", "results": len(results)})
		}
	} else {
		log.Printf("level=info msg=\"official site from cache\" request_id=%s site=%s", reqID, site)
	}

	// -------- targeted linkedin search (best effort) --------
	linkedinHint := ""
	if hits, err := e.Search.Search(ctx, query+" site:linkedin.com/company", 3); err == nil {
		linkedinHint = firstURL(hits)
	}

	// -------- crawl the official site --------
	var pages []crawler.Page
	if targets := crawlTargets(site, siteLinks, cfg.Provider.MaxCrawlPages); len(targets) > 0 {
		var err error
		pages, err = e.Crawler.Crawl(ctx, targets, cfg.Provider.MaxCrawlPages)
		if err != nil {
			warnings = warnf(warnings, "crawler", err)
			e.publish(reqID, events.TypeProviderFailed, map[string]string{"provider": "crawler", "cause": err.Error()})
			pages = nil
		} else {
			e.publish(reqID, events.TypeProviderDone, map[string]any{"provider": "crawler", "pages": len(pages)})
		}
	}

	// -------- directory listing --------
	var listing *directory.Listing
	if l, err := e.Directory.Lookup(ctx, query, locationHint); err != nil {
		warnings = warnf(warnings, "directory", err)
		e.publish(reqID, events.TypeProviderFailed, map[string]string{"provider": "directory", "cause": err.Error()})
	} else {
		listing = l
		e.publish(reqID, events.TypeProviderDone, map[string]any{"provider": "directory", "matched": l != nil})
	}

	if site == "" && len(pages) == 0 && listing == nil {
		return LookupResult{}, ErrNothingFound
	}

	// -------- merge --------
	rec := enrich.Assemble(enrich.Sources{
		Query:        query,
		OfficialSite: site,
		Pages:        pages,
		Listing:      listing,
		LinkedInHint: linkedinHint,
		Warnings:     warnings,
	}, cfg.Insights.Vocabularies)
	e.publish(reqID, events.TypeRecordAssembled, map[string]any{"company": rec.CompanyName, "warnings": len(rec.Warnings)})

	e.rememberSite(ctx, rec.CompanyName, rec.Website)

	// -------- export: one fresh snapshot per run --------
	snap, err := e.Exporter.Write("lead", []domain.EnrichmentRecord{rec})
	if err != nil {
		return LookupResult{}, err
	}
	if e.DB != nil {
		if err := store.InsertSnapshot(ctx, e.DB.Pool, snap.Name, snap.Format, query, snap.Count, snap.CreatedAt); err != nil {
			log.Printf("level=warn msg=\"snapshot index write failed\" name=%s err=%v", snap.Name, err)
		}
	}
	e.publish(reqID, events.TypeExportWritten, snap)

	log.Printf("level=info msg=\"lookup finished\" request_id=%s query=%q warnings=%d took=%s",
		reqID, query, len(rec.Warnings), time.Since(started).Round(time.Millisecond))
	e.publish(reqID, events.TypeRunCompleted, map[string]any{"query": query, "snapshot": snap.Name})

	return LookupResult{Record: rec, Snapshot: snap}, nil
}
