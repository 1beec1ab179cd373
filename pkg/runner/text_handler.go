package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// TextHandler implements the standard terminal interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	Styler   LabelStyler

	maxInput  int
	inputChan chan inputResult
	done      chan struct{}
	stopped   chan struct{}
	initOnce  sync.Once
	startOnce sync.Once
	closeOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the system message renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerStyler configures how the sentiment badge is colored.
func WithTextHandlerStyler(styler LabelStyler) TextHandlerOption {
	return func(h *TextHandler) {
		h.Styler = styler
	}
}

// WithTextHandlerMaxInput overrides the input size limit.
func WithTextHandlerMaxInput(limit int) TextHandlerOption {
	return func(h *TextHandler) {
		h.maxInput = limit
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) init() {
	h.initOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		h.done = make(chan struct{})
		h.stopped = make(chan struct{})
	})
}

func (h *TextHandler) initPump() {
	h.init()
	h.startOnce.Do(func() {
		go h.pump()
	})
}

// Close stops the background reader. A read already in progress still has to
// return before the goroutine exits. Input returns io.EOF after Close.
func (h *TextHandler) Close() error {
	h.init()
	h.closeOnce.Do(func() {
		close(h.done)
	})
	return nil
}

// pump reads lines in the background so Input can honor context cancellation.
func (h *TextHandler) pump() {
	defer close(h.stopped)
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" && !h.send(inputResult{text: text}) {
			return
		}
		if err != nil {
			if err == io.EOF {
				close(h.inputChan)
				return
			}
			if !h.send(inputResult{err: err}) {
				return
			}
			// Backoff so a persistent read failure does not spin.
			select {
			case <-h.done:
				return
			case <-time.After(50 * time.Millisecond):
			}
		}
	}
}

func (h *TextHandler) send(res inputResult) bool {
	select {
	case h.inputChan <- res:
		return true
	case <-h.done:
		return false
	}
}

func (h *TextHandler) Input(ctx context.Context, prompt string) (string, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-h.done:
			return "", io.EOF
		default:
			fmt.Fprint(h.Writer, prompt)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-h.done:
			return "", io.EOF
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}

			clean, err := SanitizeInputLimit(strings.TrimSpace(res.text), h.limit())
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func (h *TextHandler) Output(ctx context.Context, turn Turn) error {
	switch turn.Kind {
	case TurnTrend:
		if turn.Trend == nil {
			return nil
		}
		_, err := fmt.Fprintf(h.Writer, "\nSentiment Analysis: %s\n\n", turn.Trend.Summary)
		return err
	default:
		if turn.Sentiment == nil {
			_, err := fmt.Fprintf(h.Writer, "Bot: %s\n", turn.Reply)
			return err
		}
		badge := fmt.Sprintf("[Sentiment: %s | Score: %.2f]",
			strings.ToUpper(turn.Sentiment.Label.String()), turn.Sentiment.Score)
		if h.Styler != nil {
			badge = h.Styler(turn.Sentiment.Label, badge)
		}
		_, err := fmt.Fprintf(h.Writer, "\n%s\nBot: %s\n\n", badge, turn.Reply)
		return err
	}
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	output := msg
	if h.Renderer != nil {
		if rendered, err := h.Renderer(msg); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintf(h.Writer, "\n%s\n", strings.TrimSpace(output))
	return err
}

func (h *TextHandler) limit() int {
	if h.maxInput > 0 {
		return h.maxInput
	}
	return DefaultMaxInputSize
}
