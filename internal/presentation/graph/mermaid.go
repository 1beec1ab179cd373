package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/aretw0/moodbot/pkg/sentiment"
)

// MaxLabelRunes truncates message text shown inside a node.
const MaxLabelRunes = 32

// Overlay contains summary data to annotate the chart with.
type Overlay struct {
	Trend *conversation.Report
}

// GenerateMermaid produces a Mermaid flowchart of a conversation, oldest message first.
// Node shapes follow the sentiment label:
// - Positive: ([Stadium])
// - Negative: {{Hexagon}}
// - Neutral: [Rectangle]
// Edges carry the score change between consecutive messages.
func GenerateMermaid(exchanges []conversation.Exchange, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for i, ex := range exchanges {
		id := fmt.Sprintf("m%d", i+1)

		opener, closer := "[", "]"
		switch ex.Sentiment.Label {
		case sentiment.Positive:
			opener, closer = "([", "])"
		case sentiment.Negative:
			opener, closer = "{{", "}}"
		}

		fmt.Fprintf(&sb, "    %s%s\"%s <br/> %+.2f\"%s\n", id, opener, sanitizeLabel(ex.Input), ex.Sentiment.Score, closer)

		if i > 0 {
			delta := ex.Sentiment.Score - exchanges[i-1].Sentiment.Score
			fmt.Fprintf(&sb, "    m%d -- \"%+.2f\" --> %s\n", i, delta, id)
		}
	}

	sb.WriteString("\n    classDef positive fill:#dcfce7,stroke:#16a34a,color:#000;\n")
	sb.WriteString("    classDef negative fill:#fee2e2,stroke:#dc2626,color:#000;\n")
	sb.WriteString("    classDef neutral fill:#f3f4f6,stroke:#6b7280,color:#000;\n")
	for i, ex := range exchanges {
		fmt.Fprintf(&sb, "    class m%d %s;\n", i+1, ex.Sentiment.Label)
	}

	if overlay != nil && overlay.Trend != nil {
		sb.WriteString("\n    %% Trend\n")
		fmt.Fprintf(&sb, "    trend[/\"%s\"/]\n", sanitizeLabel(overlay.Trend.Summary))
		if len(exchanges) > 0 {
			fmt.Fprintf(&sb, "    m%d -.-> trend\n", len(exchanges))
		}
	}

	return sb.String()
}

// sanitizeLabel makes user text safe inside a quoted Mermaid label.
func sanitizeLabel(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	if r := []rune(s); len(r) > MaxLabelRunes {
		s = string(r[:MaxLabelRunes-1]) + "…"
	}
	return s
}
