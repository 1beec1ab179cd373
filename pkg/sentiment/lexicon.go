package sentiment

import (
	"errors"
	"strings"
)

// ErrEmptyLexicon is returned when a lexicon is built without any polarity words.
var ErrEmptyLexicon = errors.New("lexicon has no positive or negative words")

// DefaultPositiveWords is the built-in positive vocabulary.
var DefaultPositiveWords = []string{
	"happy", "joy", "love", "excellent", "good", "great", "amazing",
	"wonderful", "fantastic", "perfect", "thank", "thanks", "awesome",
	"brilliant", "nice", "beautiful", "excited", "pleasure",
}

// DefaultNegativeWords is the built-in negative vocabulary.
var DefaultNegativeWords = []string{
	"sad", "angry", "hate", "terrible", "bad", "awful", "horrible",
	"worst", "annoying", "frustrated", "disappointed", "upset", "mad",
	"furious", "depressed", "unhappy", "miserable",
}

// Lexicon is an immutable pair of word sets.
// The sets are not required to be disjoint.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

// NewLexicon builds a Lexicon from raw word lists.
// Words are trimmed and lower-cased; blanks are skipped.
func NewLexicon(positive, negative []string) (*Lexicon, error) {
	lex := &Lexicon{
		positive: toSet(positive),
		negative: toSet(negative),
	}
	if len(lex.positive) == 0 && len(lex.negative) == 0 {
		return nil, ErrEmptyLexicon
	}
	return lex, nil
}

// DefaultLexicon returns the built-in vocabulary.
func DefaultLexicon() *Lexicon {
	lex, _ := NewLexicon(DefaultPositiveWords, DefaultNegativeWords)
	return lex
}

// IsPositive reports whether word (already normalized) is in the positive set.
func (l *Lexicon) IsPositive(word string) bool {
	_, ok := l.positive[word]
	return ok
}

// IsNegative reports whether word (already normalized) is in the negative set.
func (l *Lexicon) IsNegative(word string) bool {
	_, ok := l.negative[word]
	return ok
}

// Size returns the number of positive and negative entries.
func (l *Lexicon) Size() (positive, negative int) {
	return len(l.positive), len(l.negative)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
