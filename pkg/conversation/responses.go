package conversation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/moodbot/pkg/sentiment"
)

// ErrEmptyTemplates is returned when a label has no reply templates.
var ErrEmptyTemplates = errors.New("no reply templates for label")

// ResponseTable maps each label to its ordered reply templates.
type ResponseTable map[sentiment.Label][]string

// DefaultResponses returns the built-in reply templates.
func DefaultResponses() ResponseTable {
	return ResponseTable{
		sentiment.Positive: {
			"That's wonderful to hear! Tell me more!",
			"I'm so glad you're feeling positive! What else is on your mind?",
			"Your enthusiasm is contagious! Keep going!",
			"Love the positive energy! How can I help you further?",
		},
		sentiment.Negative: {
			"I'm sorry you're feeling this way. Want to talk about it?",
			"That sounds tough. I'm here to listen if you need.",
			"I understand this is frustrating. How can I support you?",
			"Let's see if we can work through this together.",
		},
		sentiment.Neutral: {
			"Interesting. Tell me more about that.",
			"I see. What else would you like to discuss?",
			"Got it. How can I help you today?",
			"I'm listening. What's on your mind?",
		},
	}
}

// Validate checks that every label has at least one non-blank template.
func (t ResponseTable) Validate() error {
	for _, label := range sentiment.Labels {
		ok := false
		for _, tmpl := range t[label] {
			if strings.TrimSpace(tmpl) != "" {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrEmptyTemplates, label)
		}
	}
	return nil
}

// clone copies the table so callers cannot mutate a Tracker's templates.
func (t ResponseTable) clone() ResponseTable {
	out := make(ResponseTable, len(t))
	for label, tmpls := range t {
		kept := make([]string, 0, len(tmpls))
		for _, tmpl := range tmpls {
			if strings.TrimSpace(tmpl) != "" {
				kept = append(kept, tmpl)
			}
		}
		out[label] = kept
	}
	return out
}
