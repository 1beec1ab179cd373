package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/moodbot/internal/presentation/graph"
	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/aretw0/moodbot/pkg/sentiment"
	"github.com/stretchr/testify/assert"
)

func ex(input string, score float64) conversation.Exchange {
	return conversation.Exchange{
		Input:     input,
		Sentiment: sentiment.Result{Score: score, Label: sentiment.Classify(score)},
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name      string
		exchanges []conversation.Exchange
		overlay   *graph.Overlay
		contains  []string
		excludes  []string
	}{
		{
			name:      "Empty",
			exchanges: nil,
			contains:  []string{"graph LR\n", "classDef positive"},
			excludes:  []string{"m1"},
		},
		{
			name:      "Shapes By Label",
			exchanges: []conversation.Exchange{ex("yay", 1), ex("meh", 0), ex("ugh", -1)},
			contains: []string{
				`m1(["yay <br/> +1.00"])`,
				`m2["meh <br/> +0.00"]`,
				`m3{{"ugh <br/> -1.00"}}`,
				"class m1 positive;",
				"class m2 neutral;",
				"class m3 negative;",
			},
		},
		{
			name:      "Edges Carry Delta",
			exchanges: []conversation.Exchange{ex("a", 0.5), ex("b", -0.5)},
			contains:  []string{`m1 -- "-1.00" --> m2`},
		},
		{
			name:      "Label Escaping",
			exchanges: []conversation.Exchange{ex(`say "hi" <b>`, 0)},
			contains:  []string{`say 'hi' &lt;b&gt;`},
			excludes:  []string{`"hi"`},
		},
		{
			name:      "Trend Overlay",
			exchanges: []conversation.Exchange{ex("a", 1), ex("b", 1)},
			overlay:   &graph.Overlay{Trend: &conversation.Report{Summary: conversation.TrendUp}},
			contains:  []string{`trend[/"Overall positive conversation (trending up)"/]`, "m2 -.-> trend"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.exchanges, tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tt.excludes {
				assert.NotContains(t, got, bad)
			}
		})
	}
}

func TestGenerateMermaid_TruncatesLongInput(t *testing.T) {
	got := graph.GenerateMermaid([]conversation.Exchange{ex(strings.Repeat("word ", 20), 0)}, nil)
	assert.Contains(t, got, "…")
	assert.NotContains(t, got, strings.Repeat("word ", 10))
}
