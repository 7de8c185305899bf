package enrich

import (
	"regexp"
	"strings"
)

// phoneCandidateRe finds digit runs with the usual decoration: spaces,
// dashes, dots, parentheses, an optional leading +.
var phoneCandidateRe = regexp.MustCompile(`\+?[\d(][\d\s().\-]{6,}\d`)

// CleanPhone strips decoration down to digits plus a leading country-code
// +, and rejects shapes outside the 8-15 digit E.164 length range (which
// also filters things like employee ranges "201-1000").
func CleanPhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && b.Len() == 0 {
			b.WriteRune(r)
		}
	}
	s := b.String()
	digits := strings.TrimPrefix(s, "+")
	if len(digits) < 8 || len(digits) > 15 {
		return ""
	}
	return s
}

// ExtractPhones scans text for phone-shaped digit sequences, normalized
// and deduplicated in first-occurrence order.
func ExtractPhones(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range phoneCandidateRe.FindAllString(text, -1) {
		p := CleanPhone(m)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// MergePhones cleans and deduplicates raw phone strings from several
// sources, preserving the callers' ordering.
func MergePhones(raws ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, group := range raws {
		for _, raw := range group {
			p := CleanPhone(raw)
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
