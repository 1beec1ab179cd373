package conversation

import (
	"testing"

	"github.com/aretw0/moodbot/pkg/sentiment"
	"github.com/stretchr/testify/assert"
)

func ex(input string, score float64) Exchange {
	return Exchange{Input: input, Sentiment: sentiment.Result{Score: score, Label: sentiment.Classify(score)}}
}

func TestHistory_FillAndCycle(t *testing.T) {
	h := NewHistory(3)
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Items())

	assert.False(t, h.Push(ex("a", 1)))
	assert.False(t, h.Push(ex("b", 0)))
	assert.False(t, h.Push(ex("c", -1)))
	assert.Equal(t, 3, h.Len())

	assert.True(t, h.Push(ex("d", 0.5)))
	assert.True(t, h.Push(ex("e", -0.5)))
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 3, h.Cap())

	var inputs []string
	for _, it := range h.Items() {
		inputs = append(inputs, it.Input)
	}
	assert.Equal(t, []string{"c", "d", "e"}, inputs)
	assert.Equal(t, []float64{-1, 0.5, -0.5}, h.Scores())
}

func TestHistory_ItemsIsACopy(t *testing.T) {
	h := NewHistory(2)
	h.Push(ex("a", 1))

	items := h.Items()
	items[0].Input = "changed"
	assert.Equal(t, "a", h.Items()[0].Input)
}

func TestHistory_MinimumCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Push(ex("a", 0))
	h.Push(ex("b", 0))
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "b", h.Items()[0].Input)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   Direction
	}{
		{"Empty", nil, DirectionUnknown},
		{"Single", []float64{1}, DirectionUnknown},
		{"Up", []float64{1, 0}, DirectionUp},
		{"Down", []float64{-1, 0}, DirectionDown},
		{"Upper Boundary", []float64{0.4, 0}, DirectionStable},
		{"Lower Boundary", []float64{-0.4, 0}, DirectionStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarize(tt.scores).Direction)
		})
	}
}
