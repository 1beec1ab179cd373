package conversation

import "github.com/aretw0/moodbot/pkg/sentiment"

// HistorySize is the number of exchanges retained by a Tracker.
const HistorySize = 5

// Exchange is one recorded user turn.
type Exchange struct {
	Input     string           `json:"input"`
	Sentiment sentiment.Result `json:"sentiment"`
}

// History is a fixed-capacity FIFO ring buffer of exchanges.
// When full, pushing a new exchange evicts the oldest one.
type History struct {
	buf   []Exchange
	start int
	count int
}

// NewHistory creates an empty history holding at most capacity entries.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]Exchange, capacity)}
}

// Push appends ex, evicting the oldest entry if the buffer is full.
// It reports whether an eviction happened.
func (h *History) Push(ex Exchange) bool {
	if h.count < len(h.buf) {
		h.buf[(h.start+h.count)%len(h.buf)] = ex
		h.count++
		return false
	}
	h.buf[h.start] = ex
	h.start = (h.start + 1) % len(h.buf)
	return true
}

// Len returns the number of stored exchanges.
func (h *History) Len() int {
	return h.count
}

// Cap returns the buffer capacity.
func (h *History) Cap() int {
	return len(h.buf)
}

// Items returns a copy of the stored exchanges, oldest first.
func (h *History) Items() []Exchange {
	out := make([]Exchange, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Scores returns the stored sentiment scores, oldest first.
func (h *History) Scores() []float64 {
	out := make([]float64, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)].Sentiment.Score
	}
	return out
}
