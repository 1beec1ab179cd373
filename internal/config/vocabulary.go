package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/aretw0/moodbot/pkg/sentiment"
	"gopkg.in/yaml.v3"
)

// DefaultVocabularyPath is looked up in the working directory when no path is given.
const DefaultVocabularyPath = "moodbot.yaml"

// Vocabulary is the on-disk shape of moodbot.yaml (or .json).
//
//	positive: [happy, joy]
//	negative: [sad, angry]
//	responses:
//	  positive: ["That's wonderful to hear!"]
//	  negative: ["That sounds tough."]
//	  neutral:  ["I see."]
//
// Empty sections fall back to the built-ins.
type Vocabulary struct {
	Positive  []string            `yaml:"positive" json:"positive"`
	Negative  []string            `yaml:"negative" json:"negative"`
	Responses map[string][]string `yaml:"responses" json:"responses"`
}

// LoadVocabulary reads a vocabulary file. A missing file yields an empty Vocabulary,
// which means "use the built-ins".
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Vocabulary{}, nil
		}
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}

	var v Vocabulary
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return &v, nil
}

// Lexicon builds the polarity lexicon, or returns nil when the file defines no words.
func (v *Vocabulary) Lexicon() (*sentiment.Lexicon, error) {
	if len(v.Positive) == 0 && len(v.Negative) == 0 {
		return nil, nil
	}
	return sentiment.NewLexicon(v.Positive, v.Negative)
}

// ResponseTable merges the file's templates over the defaults, label by label.
func (v *Vocabulary) ResponseTable() (conversation.ResponseTable, error) {
	table := conversation.DefaultResponses()
	for key, templates := range v.Responses {
		label := sentiment.Label(strings.ToLower(strings.TrimSpace(key)))
		if !isKnownLabel(label) {
			return nil, fmt.Errorf("unknown response label %q", key)
		}
		table[label] = templates
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func isKnownLabel(l sentiment.Label) bool {
	for _, known := range sentiment.Labels {
		if l == known {
			return true
		}
	}
	return false
}
