package enrich

import (
	"strings"
)

// CleanLinkedIn canonicalizes a LinkedIn URL: drop query/fragment, the
// /posts tail and trailing separators.
func CleanLinkedIn(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	if i := strings.IndexByte(u, '#'); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimRight(u, "/")
	u = strings.TrimSuffix(u, "/posts")
	u = strings.TrimRight(u, "/")
	u = strings.TrimSuffix(u, "-")
	return u
}

func isCompanyProfile(u string) bool {
	return strings.Contains(u, "linkedin.com/company/")
}

func companySlug(u string) string {
	i := strings.Index(u, "/company/")
	if i < 0 {
		return ""
	}
	slug := u[i+len("/company/"):]
	if j := strings.IndexByte(slug, '/'); j >= 0 {
		slug = slug[:j]
	}
	return strings.ToLower(slug)
}

// PickLinkedIn chooses the best company-profile URL. Preference: a
// /company/ URL whose slug contains the company name (spaces collapsed,
// case-insensitive), then any /company/ URL, then the first LinkedIn link.
// Equally good matches resolve to the earliest occurrence.
func PickLinkedIn(urls []string, companyName string) string {
	var cleaned []string
	seen := map[string]bool{}
	for _, raw := range urls {
		u := CleanLinkedIn(raw)
		if u == "" || !strings.Contains(strings.ToLower(u), "linkedin.com") || seen[u] {
			continue
		}
		seen[u] = true
		cleaned = append(cleaned, u)
	}
	if len(cleaned) == 0 {
		return ""
	}

	for _, needle := range slugNeedles(companyName) {
		for _, u := range cleaned {
			if slug := companySlug(u); slug != "" && strings.Contains(slug, needle) {
				return u
			}
		}
	}
	for _, u := range cleaned {
		if isCompanyProfile(u) {
			return u
		}
	}
	return cleaned[0]
}

// slugNeedles turns "Acme Hospitality" into ["acme-hospitality", "acme"]:
// try the full slug form first, then just the leading brand word.
func slugNeedles(name string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(fields) == 0 {
		return nil
	}
	full := strings.Join(fields, "-")
	if len(fields) == 1 {
		return []string{full}
	}
	return []string{full, fields[0]}
}
