package conversation

import "time"

// ExchangeEvent describes a completed Respond call.
type ExchangeEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	Exchange     Exchange  `json:"exchange"`
	Reply        string    `json:"reply"`
	Personalized bool      `json:"personalized"`
	Evicted      bool      `json:"evicted"`
	HistoryLen   int       `json:"history_len"`
}

// Hooks defines callbacks for tracker observability.
type Hooks struct {
	OnExchange func(*ExchangeEvent)
	OnTrend    func(Report)
}
