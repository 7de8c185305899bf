package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanLinkedIn(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://www.linkedin.com/company/acme/posts/?feedView=all", "https://www.linkedin.com/company/acme"},
		{"https://www.linkedin.com/company/acme/", "https://www.linkedin.com/company/acme"},
		{"https://www.linkedin.com/company/acme#about", "https://www.linkedin.com/company/acme"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanLinkedIn(c.in), "input %q", c.in)
	}
}

func TestPickLinkedInPrefersMatchingSlug(t *testing.T) {
	urls := []string{
		"https://www.linkedin.com/company/some-agency",
		"https://www.linkedin.com/in/jane-doe",
		"https://www.linkedin.com/company/acme-hospitality",
	}
	got := PickLinkedIn(urls, "Acme Hospitality")
	assert.Equal(t, "https://www.linkedin.com/company/acme-hospitality", got)
}

func TestPickLinkedInBrandWordFallback(t *testing.T) {
	urls := []string{
		"https://www.linkedin.com/in/jane-doe",
		"https://www.linkedin.com/company/acme-group-emea",
	}
	got := PickLinkedIn(urls, "Acme Hospitality Ltd")
	assert.Equal(t, "https://www.linkedin.com/company/acme-group-emea", got)
}

func TestPickLinkedInTieBreaksOnFirstOccurrence(t *testing.T) {
	urls := []string{
		"https://www.linkedin.com/company/acme-one",
		"https://www.linkedin.com/company/acme-two",
	}
	got := PickLinkedIn(urls, "Acme")
	assert.Equal(t, "https://www.linkedin.com/company/acme-one", got)
}

func TestPickLinkedInNoCompanyProfile(t *testing.T) {
	urls := []string{"https://www.linkedin.com/in/jane-doe?trk=feed"}
	got := PickLinkedIn(urls, "Whoever")
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", got)

	assert.Equal(t, "", PickLinkedIn(nil, "Whoever"))
}
