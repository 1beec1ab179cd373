// Package metrics exposes prometheus collectors for conversations and sessions.
package metrics

import (
	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/aretw0/moodbot/pkg/sentiment"
	"github.com/aretw0/moodbot/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "moodbot"

// Metrics groups the collectors registered on a single registry.
type Metrics struct {
	// ExchangesTotal counts replies by the sentiment label of the input.
	ExchangesTotal *prometheus.CounterVec

	// MessageScore tracks the distribution of per-message scores.
	MessageScore prometheus.Histogram

	// PersonalizedTotal counts replies prefixed with the user's name.
	PersonalizedTotal prometheus.Counter

	// HistoryEvictionsTotal counts exchanges dropped from full histories.
	HistoryEvictionsTotal prometheus.Counter

	// TrendRequestsTotal counts trend reports by direction.
	TrendRequestsTotal *prometheus.CounterVec

	// AnalysesTotal counts one-shot analyses (outside any conversation) by label.
	AnalysesTotal *prometheus.CounterVec

	// ActiveSessions is the number of live server-side sessions.
	ActiveSessions prometheus.Gauge
}

// New creates the collectors and registers them on reg.
// A nil reg falls back to the default prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		ExchangesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exchanges_total",
				Help:      "Total conversation exchanges by sentiment label",
			},
			[]string{"label"},
		),
		MessageScore: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "message_score",
				Help:      "Sentiment score of conversation messages",
				Buckets:   []float64{-1, -0.6, -0.2, 0, 0.2, 0.6, 1},
			},
		),
		PersonalizedTotal: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "personalized_replies_total",
				Help:      "Total replies addressed to the user by name",
			},
		),
		HistoryEvictionsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_evictions_total",
				Help:      "Total exchanges evicted from conversation history",
			},
		),
		TrendRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trend_requests_total",
				Help:      "Total trend reports by direction",
			},
			[]string{"direction"},
		),
		AnalysesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Total one-shot analyses by sentiment label",
			},
			[]string{"label"},
		),
		ActiveSessions: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Number of live sessions",
			},
		),
	}
}

// ConversationHooks returns tracker hooks that record exchanges and trends.
// Existing hooks in next are still called.
func (m *Metrics) ConversationHooks(next conversation.Hooks) conversation.Hooks {
	return conversation.Hooks{
		OnExchange: func(e *conversation.ExchangeEvent) {
			res := e.Exchange.Sentiment
			m.ExchangesTotal.WithLabelValues(string(res.Label)).Inc()
			m.MessageScore.Observe(res.Score)
			if e.Personalized {
				m.PersonalizedTotal.Inc()
			}
			if e.Evicted {
				m.HistoryEvictionsTotal.Inc()
			}
			if next.OnExchange != nil {
				next.OnExchange(e)
			}
		},
		OnTrend: func(r conversation.Report) {
			m.TrendRequestsTotal.WithLabelValues(string(r.Direction)).Inc()
			if next.OnTrend != nil {
				next.OnTrend(r)
			}
		},
	}
}

// SessionHooks returns manager hooks that keep ActiveSessions current.
func (m *Metrics) SessionHooks() session.Hooks {
	set := func(_ string, active int) { m.ActiveSessions.Set(float64(active)) }
	return session.Hooks{OnCreate: set, OnDelete: set}
}

// ObserveAnalysis records a one-shot analysis.
func (m *Metrics) ObserveAnalysis(res sentiment.Result) {
	m.AnalysesTotal.WithLabelValues(string(res.Label)).Inc()
}
