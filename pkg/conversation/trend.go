package conversation

import "github.com/aretw0/moodbot/pkg/sentiment"

// Trend summaries.
const (
	TrendInsufficient = "Not enough data yet"
	TrendUp           = "Overall positive conversation (trending up)"
	TrendDown         = "Overall negative conversation (trending down)"
	TrendStable       = "Neutral conversation (stable)"
)

// MinTrendSamples is the number of exchanges needed before a trend is reported.
const MinTrendSamples = 2

// Direction is the classified movement of a conversation.
type Direction string

const (
	DirectionUnknown Direction = "unknown"
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionStable  Direction = "stable"
)

// Report is the structured form of a trend summary.
type Report struct {
	Direction Direction       `json:"direction"`
	Label     sentiment.Label `json:"label,omitempty"`
	Mean      float64         `json:"mean"`
	Samples   int             `json:"samples"`
	Summary   string          `json:"summary"`
}

// summarize classifies the mean of scores using the single-message thresholds.
func summarize(scores []float64) Report {
	if len(scores) < MinTrendSamples {
		return Report{
			Direction: DirectionUnknown,
			Samples:   len(scores),
			Summary:   TrendInsufficient,
		}
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))

	r := Report{Mean: mean, Samples: len(scores), Label: sentiment.Classify(mean)}
	switch r.Label {
	case sentiment.Positive:
		r.Direction, r.Summary = DirectionUp, TrendUp
	case sentiment.Negative:
		r.Direction, r.Summary = DirectionDown, TrendDown
	default:
		r.Direction, r.Summary = DirectionStable, TrendStable
	}
	return r
}
