package runner

import (
	"context"

	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/aretw0/moodbot/pkg/sentiment"
)

// TurnKind distinguishes what a Turn carries.
type TurnKind string

const (
	TurnReply TurnKind = "reply"
	TurnTrend TurnKind = "trend"
)

// Turn is one unit of output produced by the loop.
type Turn struct {
	Kind      TurnKind             `json:"type"`
	Input     string               `json:"input,omitempty"`
	Reply     string               `json:"reply,omitempty"`
	Sentiment *sentiment.Result    `json:"sentiment,omitempty"`
	Trend     *conversation.Report `json:"trend,omitempty"`
}

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (terminal) and JSON (structured) modes.
type IOHandler interface {
	// Input reads one line from the user. prompt is a hint that handlers may
	// display (text) or ignore (JSON).
	Input(ctx context.Context, prompt string) (string, error)

	// Output presents a reply or trend to the user.
	Output(ctx context.Context, turn Turn) error

	// SystemOutput presents a meta-message (greeting, farewell, notices).
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms system text before it is written (e.g. markdown to ANSI).
type ContentRenderer func(string) (string, error)

// LabelStyler decorates a sentiment badge (e.g. with terminal colors).
type LabelStyler func(label sentiment.Label, text string) string
