package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/moodbot/pkg/sentiment"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelStyler_Ascii(t *testing.T) {
	style := NewLabelStyler(termenv.Ascii)
	for _, label := range sentiment.Labels {
		assert.Equal(t, "[badge]", style(label, "[badge]"))
	}
}

func TestLabelStyler_Colors(t *testing.T) {
	style := NewLabelStyler(termenv.TrueColor)

	pos := style(sentiment.Positive, "x")
	neg := style(sentiment.Negative, "x")
	neu := style(sentiment.Neutral, "x")

	assert.Contains(t, pos, "\x1b[")
	assert.Contains(t, pos, "x")
	assert.NotEqual(t, pos, neg)
	assert.NotEqual(t, neg, neu)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.Ascii, "0.1.0\n")

	out := buf.String()
	assert.Contains(t, out, "Sentiment Analysis Chatbot v0.1.0")
	assert.NotContains(t, out, "\x1b[")
	assert.Equal(t, len(bannerLines)+3, strings.Count(out, "\n"))
}

func TestRenderer(t *testing.T) {
	render := NewRenderer(60)
	out, err := render("**Hello**")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello")
}
