package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// SystemMessage is the NDJSON envelope for SystemOutput.
type SystemMessage struct {
	Kind    string `json:"type"`
	Message string `json:"message"`
}

// JSONHandler implements IOHandler over newline-delimited JSON.
//
// Each input line may be a JSON string ("hello"), an object ({"text":"hello"}),
// or plain text. Each output is a single JSON object per line.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder

	maxInput int
}

// JSONHandlerOption defines configuration for JSONHandler.
type JSONHandlerOption func(*JSONHandler)

// WithJSONHandlerMaxInput overrides the input size limit.
func WithJSONHandlerMaxInput(limit int) JSONHandlerOption {
	return func(h *JSONHandler) {
		h.maxInput = limit
	}
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer, opts ...JSONHandlerOption) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *JSONHandler) Input(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && !(err == io.EOF && text != "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var value string
	var obj struct {
		Text *string `json:"text"`
	}
	switch {
	case json.Unmarshal([]byte(text), &value) == nil:
	case json.Unmarshal([]byte(text), &obj) == nil && obj.Text != nil:
		value = *obj.Text
	default:
		value = text
	}

	limit := h.maxInput
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	clean, err := SanitizeInputLimit(value, limit)
	if err != nil {
		return "", fmt.Errorf("input rejected: %w", err)
	}
	return clean, nil
}

func (h *JSONHandler) Output(ctx context.Context, turn Turn) error {
	return h.Encoder.Encode(turn)
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(SystemMessage{Kind: "system", Message: msg})
}
