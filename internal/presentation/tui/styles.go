package tui

import (
	"github.com/aretw0/moodbot/pkg/sentiment"
	"github.com/muesli/termenv"
)

// Badge colors per label.
const (
	ColorPositive = "#22c55e"
	ColorNegative = "#ef4444"
	ColorNeutral  = "#9ca3af"
)

// NewLabelStyler colors sentiment badges for the given terminal profile.
// The Ascii profile leaves text untouched.
func NewLabelStyler(profile termenv.Profile) func(sentiment.Label, string) string {
	return func(label sentiment.Label, text string) string {
		color := ColorNeutral
		switch label {
		case sentiment.Positive:
			color = ColorPositive
		case sentiment.Negative:
			color = ColorNegative
		}
		return profile.String(text).Foreground(profile.Color(color)).Bold().String()
	}
}
