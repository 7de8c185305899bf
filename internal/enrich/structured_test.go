package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructuredGraphAndStringNumbers(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"Hotel","name":"Acme",
   "aggregateRating":{"ratingValue":"4.6","reviewCount":"210"},
   "address":{"addressLocality":"Lisbon","addressRegion":"Lisboa","addressCountry":{"@type":"Country","name":"PT"}},
   "telephone":"+351 21 000 0000",
   "sameAs":["https://www.linkedin.com/company/acme","https://twitter.com/acme"]}
]}
</script>
<script type="application/ld+json">not even json</script>
</head>
<body>
<a href="mailto:stay@acme.example?subject=hi">mail</a>
<a href="tel:+351210000001">call</a>
</body></html>`

	sd := ParseStructured(html)

	assert.Equal(t, "Hotel", sd.SchemaType)
	require.NotNil(t, sd.Rating)
	assert.Equal(t, 4.6, *sd.Rating)
	require.NotNil(t, sd.ReviewCount)
	assert.Equal(t, 210, *sd.ReviewCount)
	assert.Equal(t, "Lisbon", sd.City)
	assert.Equal(t, "Lisboa", sd.Region)
	assert.Equal(t, "PT", sd.Country)
	assert.Equal(t, []string{"+351 21 000 0000"}, sd.Telephones)
	assert.Equal(t, []string{"https://www.linkedin.com/company/acme"}, sd.LinkedIns)
	assert.Equal(t, []string{"stay@acme.example"}, sd.Emails)
	assert.Equal(t, []string{"+351210000001"}, sd.TelAnchors)
}

func TestParseStructuredEmptyInput(t *testing.T) {
	sd := ParseStructured("")
	assert.Nil(t, sd.Rating)
	assert.Empty(t, sd.SchemaType)
}
