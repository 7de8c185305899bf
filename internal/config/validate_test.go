package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var cfg Config
	cfg.App.Port = 38501
	cfg.Provider.SearchActor = "vendor/search"
	cfg.Provider.CrawlerActor = "vendor/crawler"
	cfg.Provider.MapsActor = "vendor/maps"
	cfg.Provider.MaxResults = 5
	cfg.Provider.MaxCrawlPages = 6
	cfg.Provider.PollSeconds = 3
	cfg.Provider.RatePerHost = 2
	cfg.Contacts.Roles = []string{"CEO"}
	cfg.Insights.Vocabularies = []Vocabulary{
		{Name: "technology", Any: []string{"crm"}},
	}
	return cfg
}

func TestNormalizeAndValidateOK(t *testing.T) {
	out, vr := NormalizeAndValidate(validConfig())
	require.True(t, vr.OK(), "errors: %v", vr.Errors)
	assert.Equal(t, "json", out.Export.Format)
}

func TestNormalizeTrimsAndDedups(t *testing.T) {
	cfg := validConfig()
	cfg.Contacts.Roles = []string{" CEO ", "ceo", "", "Founder"}
	cfg.Insights.Vocabularies[0].Any = []string{" CRM ", "crm", "pms"}
	cfg.Export.Format = " CSV "

	out, vr := NormalizeAndValidate(cfg)
	require.True(t, vr.OK(), "errors: %v", vr.Errors)
	assert.Equal(t, []string{"CEO", "Founder"}, out.Contacts.Roles)
	assert.Equal(t, []string{"CRM", "pms"}, out.Insights.Vocabularies[0].Any)
	assert.Equal(t, "csv", out.Export.Format)
}

func TestValidateRequiresActorsUnlessMock(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.CrawlerActor = ""
	cfg.Provider.MapsActor = ""
	_, vr := NormalizeAndValidate(cfg)
	assert.False(t, vr.OK())

	cfg.Provider.UseMock = true
	_, vr = NormalizeAndValidate(cfg)
	assert.True(t, vr.OK(), "errors: %v", vr.Errors)
}

func TestValidateEmptySearchActorOnlyWarns(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.SearchActor = ""
	_, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK(), "errors: %v", vr.Errors)
	assert.NotEmpty(t, vr.Warnings)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := validConfig()
	cfg.App.Port = 0
	cfg.Provider.MaxResults = 0
	cfg.Export.Format = "xml"
	cfg.Insights.Vocabularies = append(cfg.Insights.Vocabularies,
		Vocabulary{Name: "Technology", Any: []string{"dup name"}})

	_, vr := NormalizeAndValidate(cfg)
	require.False(t, vr.OK())
	assert.GreaterOrEqual(t, len(vr.Errors), 4)
}

func TestValidateWarnsOnEmptyRoles(t *testing.T) {
	cfg := validConfig()
	cfg.Contacts.Roles = nil
	_, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK())
	assert.NotEmpty(t, vr.Warnings)
}
