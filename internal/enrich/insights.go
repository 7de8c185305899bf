package enrich

import (
	"sort"
	"strings"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/domain"
)

// Vocabulary names the config is expected to carry. Extra vocabularies are
// matched too but only these three surface on the record.
const (
	VocabTechnology     = "technology"
	VocabBuyingTriggers = "buying_triggers"
	VocabPainPoints     = "pain_points"
)

// MatchVocabulary returns the phrases of one vocabulary found in text,
// case-insensitive, duplicates collapsed, ordered by first occurrence.
func MatchVocabulary(text string, vocab config.Vocabulary) []string {
	if text == "" || len(vocab.Any) == 0 {
		return nil
	}
	lower := strings.ToLower(text)

	type hit struct {
		phrase string
		pos    int
	}
	var hits []hit
	seen := map[string]bool{}
	for _, phrase := range vocab.Any {
		p := strings.ToLower(strings.TrimSpace(phrase))
		if p == "" || seen[p] {
			continue
		}
		if pos := strings.Index(lower, p); pos >= 0 {
			seen[p] = true
			hits = append(hits, hit{phrase: p, pos: pos})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.phrase)
	}
	return out
}

// DeriveInsights runs all configured vocabularies over the crawled text and
// fills the three known tag lists. Empty lists stay empty, never nil-vs-[]
// surprises on the wire.
func DeriveInsights(text string, vocabs []config.Vocabulary) domain.InsightTags {
	tags := domain.InsightTags{
		Technology:     []string{},
		BuyingTriggers: []string{},
		PainPoints:     []string{},
	}
	for _, v := range vocabs {
		matched := MatchVocabulary(text, v)
		if matched == nil {
			matched = []string{}
		}
		switch strings.ToLower(strings.TrimSpace(v.Name)) {
		case VocabTechnology:
			tags.Technology = matched
		case VocabBuyingTriggers:
			tags.BuyingTriggers = matched
		case VocabPainPoints:
			tags.PainPoints = matched
		}
	}
	return tags
}
