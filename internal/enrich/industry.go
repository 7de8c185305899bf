package enrich

import "strings"

// countryNames expands ISO country codes the directory actor returns.
var countryNames = map[string]string{
	"IN": "India",
	"US": "United States",
	"GB": "United Kingdom",
	"AE": "United Arab Emirates",
	"SG": "Singapore",
	"DE": "Germany",
	"FR": "France",
	"ES": "Spain",
	"IT": "Italy",
	"CH": "Switzerland",
	"PT": "Portugal",
	"CA": "Canada",
	"AU": "Australia",
}

func ExpandCountry(val string) string {
	v := strings.TrimSpace(val)
	if v == "" {
		return ""
	}
	if name, ok := countryNames[strings.ToUpper(v)]; ok {
		return name
	}
	return v
}

// ClassifyIndustry maps a directory category plus a JSON-LD schema type to
// a coarse segment and type. Unknown input yields empty strings, never a
// guess.
func ClassifyIndustry(category, schemaType string) (segment, typ string) {
	text := strings.ToLower(category + " " + schemaType)

	hospitality := []string{"hotel", "resort", "lodging", "accommodation", "apartment", "stay", "hostel"}
	if containsAny(text, hospitality) {
		switch {
		case strings.Contains(text, "hotel"):
			return "Hospitality", "Hotel"
		case strings.Contains(text, "resort"):
			return "Hospitality", "Resort"
		default:
			return "Hospitality", "Accommodation"
		}
	}
	if containsAny(text, []string{"software", "saas", "technology", " it ", "ai", "data"}) {
		return "Software/IT", ""
	}
	if containsAny(text, []string{"restaurant", "cafe", "bar"}) {
		if strings.Contains(text, "restaurant") {
			return "Food & Beverage", "Restaurant"
		}
		return "Food & Beverage", ""
	}
	return "", ""
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
