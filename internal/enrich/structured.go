package enrich

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StructuredData is what a page's embedded metadata yields: JSON-LD rating
// blocks, postal address, telephone entries, sameAs profile links, plus
// mailto:/tel: anchors from the markup itself.
type StructuredData struct {
	SchemaType  string
	Rating      *float64
	ReviewCount *int
	City        string
	Region      string
	Country     string
	Telephones  []string
	LinkedIns   []string
	Emails      []string // from mailto: anchors
	TelAnchors  []string // from tel: anchors
}

// ParseStructured walks the raw HTML for script[type="application/ld+json"]
// blocks and contact anchors. Malformed blocks are skipped, never fatal.
func ParseStructured(html string) StructuredData {
	var sd StructuredData
	if strings.TrimSpace(html) == "" {
		return sd
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return sd
	}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			return
		}
		walkJSONLD(v, &sd)
	})

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		switch {
		case strings.HasPrefix(strings.ToLower(href), "mailto:"):
			addr := strings.SplitN(href[len("mailto:"):], "?", 2)[0]
			if addr != "" {
				sd.Emails = append(sd.Emails, strings.ToLower(addr))
			}
		case strings.HasPrefix(strings.ToLower(href), "tel:"):
			if t := href[len("tel:"):]; t != "" {
				sd.TelAnchors = append(sd.TelAnchors, t)
			}
		case strings.Contains(strings.ToLower(href), "linkedin.com"):
			sd.LinkedIns = append(sd.LinkedIns, href)
		}
	})

	return sd
}

func walkJSONLD(v any, sd *StructuredData) {
	switch node := v.(type) {
	case []any:
		for _, item := range node {
			walkJSONLD(item, sd)
		}
	case map[string]any:
		if g, ok := node["@graph"]; ok {
			walkJSONLD(g, sd)
		}

		if sd.SchemaType == "" {
			sd.SchemaType = typeString(node["@type"])
		}

		if ar, ok := node["aggregateRating"].(map[string]any); ok {
			if sd.Rating == nil {
				if f, ok := toFloat(ar["ratingValue"]); ok {
					sd.Rating = &f
				}
			}
			if sd.ReviewCount == nil {
				if f, ok := toFloat(ar["reviewCount"]); ok {
					n := int(f)
					sd.ReviewCount = &n
				}
			}
		}

		if addr, ok := node["address"].(map[string]any); ok {
			if sd.City == "" {
				sd.City, _ = addr["addressLocality"].(string)
			}
			if sd.Region == "" {
				sd.Region, _ = addr["addressRegion"].(string)
			}
			if sd.Country == "" {
				switch c := addr["addressCountry"].(type) {
				case string:
					sd.Country = c
				case map[string]any:
					sd.Country, _ = c["name"].(string)
				}
			}
		}

		sd.Telephones = append(sd.Telephones, stringList(node["telephone"])...)
		for _, u := range stringList(node["sameAs"]) {
			if strings.Contains(strings.ToLower(u), "linkedin.com") {
				sd.LinkedIns = append(sd.LinkedIns, u)
			}
		}
	}
}

func typeString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		var parts []string
		for _, x := range t {
			if s, ok := x.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	}
	return ""
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		var out []string
		for _, x := range t {
			if s, ok := x.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
