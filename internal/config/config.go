package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary is one named list of trigger phrases for insight matching.
// Vocabularies can be extended without touching the matching logic.
type Vocabulary struct {
	Name string   `yaml:"name" json:"name"`
	Any  []string `yaml:"any" json:"any"`
}

type Config struct {
	App struct {
		Port      int    `yaml:"port" json:"port"`
		DataDir   string `yaml:"data_dir" json:"data_dir"`
		ExportDir string `yaml:"export_dir" json:"export_dir"`
	} `yaml:"app" json:"app"`

	Provider struct {
		BaseURL string `yaml:"base_url" json:"base_url"`

		// Actor IDs on the scraping platform.
		SearchActor  string `yaml:"search_actor" json:"search_actor"`
		CrawlerActor string `yaml:"crawler_actor" json:"crawler_actor"`
		MapsActor    string `yaml:"maps_actor" json:"maps_actor"`

		MaxResults    int `yaml:"max_results" json:"max_results"`
		MaxCrawlPages int `yaml:"max_crawl_pages" json:"max_crawl_pages"`

		PollSeconds          int `yaml:"poll_seconds" json:"poll_seconds"`
		SearchTimeoutSeconds int `yaml:"search_timeout_seconds" json:"search_timeout_seconds"`
		CrawlTimeoutSeconds  int `yaml:"crawl_timeout_seconds" json:"crawl_timeout_seconds"`
		MapsTimeoutSeconds   int `yaml:"maps_timeout_seconds" json:"maps_timeout_seconds"`

		Retries        int     `yaml:"retries" json:"retries"`
		BackoffSeconds int     `yaml:"backoff_seconds" json:"backoff_seconds"`
		RatePerHost    float64 `yaml:"rate_per_host" json:"rate_per_host"`
		RateBurst      int     `yaml:"rate_burst" json:"rate_burst"`

		// UseMock swaps all actors for deterministic local stubs.
		UseMock bool `yaml:"use_mock" json:"use_mock"`
	} `yaml:"provider" json:"provider"`

	Contacts struct {
		// Role titles used when searching for a likely contact.
		Roles []string `yaml:"roles" json:"roles"`
	} `yaml:"contacts" json:"contacts"`

	Insights struct {
		Vocabularies []Vocabulary `yaml:"vocabularies" json:"vocabularies"`
	} `yaml:"insights" json:"insights"`

	Export struct {
		Format string `yaml:"format" json:"format"` // json or csv
	} `yaml:"export" json:"export"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
