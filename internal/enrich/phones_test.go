package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+1 415 555 0100", "+14155550100"},
		{"(020) 7946-0958", "02079460958"},
		{"+44.20.7946.0958", "+442079460958"},
		{"  +91 98765 43210 ", "+919876543210"},
		{"201-1000", ""},           // employee range, too short
		{"123456789012345678", ""}, // too long
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanPhone(c.in), "input %q", c.in)
	}
}

func TestExtractPhones(t *testing.T) {
	text := "Front desk: +1 415 555 0100. Fax (415) 555-0101. Team size 201-1000 people."
	got := ExtractPhones(text)
	assert.Equal(t, []string{"+14155550100", "4155550101"}, got)
}

func TestMergePhonesDedupsAcrossSources(t *testing.T) {
	got := MergePhones(
		[]string{"+44 20 7946 0958"},
		[]string{"020 7946 0958", "+442079460958"},
	)
	assert.Equal(t, []string{"+442079460958", "02079460958"}, got)
}
