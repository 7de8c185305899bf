package enrich

import (
	"regexp"
	"sort"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	// "name [at] domain [dot] com" and friends
	obfuscatedRe = regexp.MustCompile(`(?i)([a-z0-9._%+-]+)\s*[\(\[]?\s*at\s*[\)\]]?\s*([a-z0-9.-]+)\s*[\(\[]?\s*dot\s*[\)\]]?\s*([a-z]{2,})`)
	emailShapeRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

var webmailDomains = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"live.com":       true,
	"aol.com":        true,
	"icloud.com":     true,
	"protonmail.com": true,
}

// ValidEmail is the address-shape gate every extracted value must pass.
func ValidEmail(s string) bool {
	return emailShapeRe.MatchString(s)
}

// ExtractEmails scans page text for plain and obfuscated addresses, in
// first-occurrence order, lowercased and deduplicated.
func ExtractEmails(text string) []string {
	seen := map[string]bool{}
	var out []string

	add := func(e string) {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || seen[e] || !ValidEmail(e) {
			return
		}
		seen[e] = true
		out = append(out, e)
	}

	for _, m := range emailRe.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range obfuscatedRe.FindAllStringSubmatch(strings.ToLower(text), -1) {
		add(m[1] + "@" + m[2] + "." + m[3])
	}
	return out
}

// RankEmails orders candidates for field fill: addresses on the official
// site's registrable domain first, then brand-token matches, then other
// business domains, webmail last. Ties keep input (first-occurrence) order.
func RankEmails(emails []string, officialURL string) []string {
	if len(emails) == 0 {
		return nil
	}

	registrable := registrableDomain(officialURL)
	token := brandToken(officialURL)

	score := func(e string) int {
		at := strings.LastIndexByte(e, '@')
		if at < 0 {
			return 4
		}
		domain := strings.ToLower(e[at+1:])
		switch {
		case registrable != "" && (domain == registrable || strings.HasSuffix(domain, "."+registrable)):
			return 0
		case token != "" && strings.Contains(domain, token):
			return 1
		case webmailDomains[domain]:
			return 3
		default:
			return 2
		}
	}

	ranked := make([]string, len(emails))
	copy(ranked, emails)
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) < score(ranked[j])
	})
	return ranked
}
