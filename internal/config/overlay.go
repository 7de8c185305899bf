package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// VocabulariesFile is an optional standalone file holding only insight
// vocabularies, so long phrase lists can live outside the main config.
type VocabulariesFile struct {
	Insights struct {
		Vocabularies []Vocabulary `yaml:"vocabularies"`
	} `yaml:"insights"`
}

func OverlayVocabularies(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		// Missing vocab file should not kill startup
		return nil
	}

	var vf VocabulariesFile
	if err := yaml.Unmarshal(b, &vf); err != nil {
		return err
	}

	if len(vf.Insights.Vocabularies) > 0 {
		cfg.Insights.Vocabularies = vf.Insights.Vocabularies
	}
	return nil
}
