package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus errors/warnings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Contacts.Roles = trimList(out.Contacts.Roles)
	for i := range out.Insights.Vocabularies {
		out.Insights.Vocabularies[i].Any = trimList(out.Insights.Vocabularies[i].Any)
	}
	out.Export.Format = strings.ToLower(strings.TrimSpace(out.Export.Format))
	if out.Export.Format == "" {
		out.Export.Format = "json"
	}

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Export.Format != "json" && out.Export.Format != "csv" {
		res.addErr("export.format must be json or csv, got %q", out.Export.Format)
	}

	if !out.Provider.UseMock {
		if strings.TrimSpace(out.Provider.SearchActor) == "" {
			res.addWarn("provider.search_actor is empty; falling back to the tokenless html search.")
		}
		if strings.TrimSpace(out.Provider.CrawlerActor) == "" {
			res.addErr("provider.crawler_actor is required when use_mock=false")
		}
		if strings.TrimSpace(out.Provider.MapsActor) == "" {
			res.addErr("provider.maps_actor is required when use_mock=false")
		}
	}

	if out.Provider.MaxResults <= 0 {
		res.addErr("provider.max_results must be > 0")
	} else if out.Provider.MaxResults > 25 {
		res.addWarn("provider.max_results is high (%d); actor runs get slow past 10.", out.Provider.MaxResults)
	}
	if out.Provider.MaxCrawlPages <= 0 {
		res.addErr("provider.max_crawl_pages must be > 0")
	}
	if out.Provider.PollSeconds <= 0 {
		res.addErr("provider.poll_seconds must be > 0")
	}
	if out.Provider.Retries < 0 {
		res.addErr("provider.retries must be >= 0")
	}
	if out.Provider.RatePerHost <= 0 {
		res.addErr("provider.rate_per_host must be > 0")
	}

	if len(out.Contacts.Roles) == 0 {
		res.addWarn("contacts.roles is empty; contact lookup will match any title.")
	}

	seen := map[string]bool{}
	for i, v := range out.Insights.Vocabularies {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			res.addErr("insights.vocabularies[%d].name is required", i)
			continue
		}
		if seen[strings.ToLower(name)] {
			res.addErr("insights.vocabularies has duplicate name %q", name)
		}
		seen[strings.ToLower(name)] = true
		if len(v.Any) == 0 {
			res.addWarn("insights.vocabularies[%d] (%s) has no phrases; it will never match.", i, name)
		}
	}

	return out, res
}
