package enrich

import (
	"net/url"
	"regexp"
	"strings"

	"leadscout-engine/internal/provider/search"
)

// aggregatorHosts are domains that are never a company's own site: social
// networks, review portals, job boards, the search engines themselves.
var aggregatorHosts = []string{
	"linkedin.com",
	"facebook.com",
	"instagram.com",
	"twitter.com",
	"x.com",
	"youtube.com",
	"tripadvisor.",
	"booking.",
	"yelp.com",
	"google.com",
	"maps.google",
	"wikipedia.org",
	"crunchbase.com",
	"glassdoor.com",
	"indeed.com",
}

var (
	homeTailRe    = regexp.MustCompile(`(?i)\s*[:\-\|–—]\s*home\s*$`)
	genericTailRe = regexp.MustCompile(`(?i)\s*[:\-\|–—]\s*(about( us)?|official site|welcome)\s*$`)
	pipeTailRe    = regexp.MustCompile(`\s*\|\s*.*$`)
)

// GuessCompanyName derives a brand name from a page's og:site_name or
// <title>, stripping boilerplate tails like ": Home" or "| Official Site".
func GuessCompanyName(siteName, title string) string {
	for _, cand := range []string{siteName, title} {
		s := strings.TrimSpace(cand)
		if s == "" {
			continue
		}
		s = homeTailRe.ReplaceAllString(s, "")
		s = genericTailRe.ReplaceAllString(s, "")
		s = pipeTailRe.ReplaceAllString(s, "")
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			return s
		}
	}
	if siteName != "" {
		return strings.TrimSpace(siteName)
	}
	return strings.TrimSpace(title)
}

// PickOfficialSite returns the first search hit that isn't an aggregator,
// or the first hit at all when everything is filtered out.
func PickOfficialSite(results []search.Result) string {
	if len(results) == 0 {
		return ""
	}
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		if !IsAggregator(r.URL) {
			return NormalizeWebsite(r.URL)
		}
	}
	return NormalizeWebsite(results[0].URL)
}

func IsAggregator(rawURL string) bool {
	lu := strings.ToLower(rawURL)
	for _, b := range aggregatorHosts {
		if strings.Contains(lu, b) {
			return true
		}
	}
	return false
}

// NormalizeWebsite ensures a scheme so bare hosts from search snippets
// become usable URLs.
func NormalizeWebsite(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return strings.TrimRight(raw, "/")
}

// registrableDomain is a naive eTLD+1: last two host labels.
func registrableDomain(rawURL string) string {
	host := hostname(rawURL)
	if host == "" {
		return ""
	}
	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], ".")
	}
	return host
}

// brandToken is the second-level label ("zapcom" from zapcom.ai), used for
// loose email-domain matching when the strict match finds nothing.
func brandToken(rawURL string) string {
	host := hostname(rawURL)
	if host == "" {
		return ""
	}
	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return parts[0]
}

func hostname(rawURL string) string {
	u, err := url.Parse(NormalizeWebsite(rawURL))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return strings.TrimPrefix(host, "www.")
}
