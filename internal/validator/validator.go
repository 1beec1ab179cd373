// Package validator checks vocabulary files before they are used by the bot.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/moodbot/internal/config"
	"github.com/aretw0/moodbot/pkg/sentiment"
)

// Report lists problems found in a vocabulary. Errors make the file unusable;
// warnings flag entries that load but can never have an effect.
type Report struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether the vocabulary can be loaded.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// Err folds the errors into a single error, or nil.
func (r Report) Err() error {
	if r.Valid() {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(r.Errors), strings.Join(r.Errors, "\n- "))
}

// ValidateVocabulary checks words and reply templates.
func ValidateVocabulary(v *config.Vocabulary) Report {
	var r Report

	pos := checkWords(&r, "positive", v.Positive)
	neg := checkWords(&r, "negative", v.Negative)

	for word := range pos {
		if neg[word] {
			r.Warnings = append(r.Warnings, fmt.Sprintf("'%s' is both positive and negative; it cancels itself out", word))
		}
	}

	if _, err := v.Lexicon(); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("lexicon: %v", err))
	}
	if _, err := v.ResponseTable(); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("responses: %v", err))
	}

	for key, templates := range v.Responses {
		for i, tmpl := range templates {
			if strings.TrimSpace(tmpl) == "" {
				r.Warnings = append(r.Warnings, fmt.Sprintf("responses.%s[%d] is blank and will be skipped", key, i))
			}
		}
	}

	return r
}

// checkWords returns the normalized set of list, recording entries the
// tokenizer can never produce.
func checkWords(r *Report, list string, words []string) map[string]bool {
	seen := make(map[string]bool, len(words))
	for i, raw := range words {
		word := strings.ToLower(strings.TrimSpace(raw))
		if word == "" {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s[%d] is blank", list, i))
			continue
		}
		if tokens := sentiment.Tokenize(word); len(tokens) != 1 || tokens[0] != word {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s word '%s' is never matched: messages are split on non-word characters", list, raw))
		}
		if seen[word] {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s word '%s' is listed more than once", list, word))
		}
		seen[word] = true
	}
	return seen
}
