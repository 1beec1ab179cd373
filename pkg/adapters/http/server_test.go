package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/moodbot"
	httpAdapter "github.com/aretw0/moodbot/pkg/adapters/http"
	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/aretw0/moodbot/pkg/sentiment"
	"github.com/aretw0/moodbot/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	server   *httpAdapter.Server
	handler  http.Handler
	sessions *session.Manager
	analyzed []sentiment.Result
}

func newFixture(t *testing.T, opts ...httpAdapter.Option) *fixture {
	t.Helper()
	bot, err := moodbot.New(moodbot.WithSeed(7))
	require.NoError(t, err)

	f := &fixture{sessions: session.NewManager(bot.NewConversation)}
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "fixture_total", Help: "fixture"}))

	f.server = httpAdapter.NewServer(bot, f.sessions, append([]httpAdapter.Option{
		httpAdapter.WithVersion("1.2.3\n"),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		httpAdapter.WithAnalyzeObserver(func(r sentiment.Result) { f.analyzed = append(f.analyzed, r) }),
	}, opts...)...)
	f.handler = f.server.Routes()
	return f
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func (f *fixture) createSession(t *testing.T, body string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/sessions", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp httpAdapter.CreateSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestHealthAndInfo(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = f.do(t, http.MethodGet, "/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"app":"moodbot-http","version":"1.2.3"}`, w.Body.String())
}

func TestAnalyze(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		body  string
		code  int
		score float64
		label sentiment.Label
	}{
		{"Positive", `{"text":"I am happy and excited"}`, http.StatusOK, 1, sentiment.Positive},
		{"Negative", `{"text":"This is terrible and awful and bad"}`, http.StatusOK, -1, sentiment.Negative},
		{"Mixed", `{"text":"happy sad"}`, http.StatusOK, 0, sentiment.Neutral},
		{"Empty Text", `{"text":""}`, http.StatusOK, 0, sentiment.Neutral},
		{"Form Feed Separates Words", `{"text":"great\fday"}`, http.StatusOK, 1, sentiment.Positive},
		{"Missing Text", `{}`, http.StatusBadRequest, 0, ""},
		{"Malformed", `{"text":`, http.StatusBadRequest, 0, ""},
		{"Wrong Type", `{"text":42}`, http.StatusBadRequest, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/analyze", tt.body)
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code != http.StatusOK {
				return
			}
			var res sentiment.Result
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.InDelta(t, tt.score, res.Score, 1e-9)
			assert.Equal(t, tt.label, res.Label)
		})
	}
	assert.Len(t, f.analyzed, 5)
}

func TestAnalyze_MatchesCoreOnControlChars(t *testing.T) {
	f := newFixture(t)
	bot, err := moodbot.New()
	require.NoError(t, err)

	for _, text := range []string{"great\fday", "happy\u0000sad", "awful\u001bbad"} {
		body, err := json.Marshal(map[string]string{"text": text})
		require.NoError(t, err)

		w := f.do(t, http.MethodPost, "/analyze", string(body))
		require.Equal(t, http.StatusOK, w.Code)

		var res sentiment.Result
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, bot.Analyze(text), res, "text %q", text)
	}
}

func TestAnalyze_Explain(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/analyze?explain=true", `{"text":"Great day, bad weather, great food"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var b sentiment.Breakdown
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, []string{"great", "great"}, b.PositiveHits)
	assert.Equal(t, []string{"bad"}, b.NegativeHits)
	assert.InDelta(t, 1.0/3.0, b.Score, 1e-9)
	assert.Equal(t, sentiment.Positive, b.Label)
}

func TestAnalyze_RejectsOversizedInput(t *testing.T) {
	f := newFixture(t, httpAdapter.WithMaxInputSize(8))

	w := f.do(t, http.MethodPost, "/analyze", `{"text":"this is far too long"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds maximum allowed size")
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	id := f.createSession(t, `{"name":"Ada"}`)

	w := f.do(t, http.MethodGet, "/sessions/"+id+"/trend", "")
	require.Equal(t, http.StatusOK, w.Code)
	var report conversation.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, conversation.TrendInsufficient, report.Summary)

	for _, text := range []string{"I love this", "great stuff"} {
		w = f.do(t, http.MethodPost, "/sessions/"+id+"/messages", `{"text":"`+text+`"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var msg httpAdapter.MessageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
		assert.Equal(t, sentiment.Positive, msg.Sentiment.Label)
		assert.NotEmpty(t, msg.Reply)
	}

	w = f.do(t, http.MethodGet, "/sessions/"+id+"/trend", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, conversation.TrendUp, report.Summary)
	assert.Equal(t, conversation.DirectionUp, report.Direction)
	assert.Equal(t, 2, report.Samples)

	w = f.do(t, http.MethodGet, "/sessions/"+id+"/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var hist httpAdapter.HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hist))
	assert.Equal(t, "Ada", hist.UserName)
	require.Len(t, hist.Exchanges, 2)
	assert.Equal(t, "I love this", hist.Exchanges[0].Input)

	w = f.do(t, http.MethodGet, "/sessions/"+id+"/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph LR\n"))
	assert.Contains(t, w.Body.String(), `m1(["I love this <br/> +1.00"])`)
	assert.Contains(t, w.Body.String(), conversation.TrendUp)

	w = f.do(t, http.MethodGet, "/sessions", "")
	assert.JSONEq(t, `{"sessions":["`+id+`"]}`, w.Body.String())

	w = f.do(t, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodGet, "/sessions/"+id+"/history", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSession_Bodies(t *testing.T) {
	f := newFixture(t)

	f.createSession(t, "")
	f.createSession(t, `{}`)

	w := f.do(t, http.MethodPost, "/sessions", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/sessions", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, 2, f.sessions.Len())
}

func TestSession_Errors(t *testing.T) {
	f := newFixture(t)
	id := f.createSession(t, "")

	tests := []struct {
		name   string
		method string
		target string
		body   string
		code   int
	}{
		{"Unknown Message", http.MethodPost, "/sessions/nope/messages", `{"text":"hi"}`, http.StatusNotFound},
		{"Unknown Trend", http.MethodGet, "/sessions/nope/trend", "", http.StatusNotFound},
		{"Unknown Graph", http.MethodGet, "/sessions/nope/graph", "", http.StatusNotFound},
		{"Unknown Delete", http.MethodDelete, "/sessions/nope", "", http.StatusNotFound},
		{"Unknown Events", http.MethodGet, "/sessions/nope/events", "", http.StatusNotFound},
		{"Blank Message", http.MethodPost, "/sessions/" + id + "/messages", `{"text":"  "}`, http.StatusBadRequest},
		{"Invalid Body", http.MethodPost, "/sessions/" + id + "/messages", `[]`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodOptions, "/analyze", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fixture_total 0")
}

func TestSubscribeEvents(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	id := f.createSession(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/"+id+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	require.Eventually(t, func() bool { return f.server.Streams.Subscribers(id) == 1 }, time.Second, 10*time.Millisecond)

	w := f.do(t, http.MethodPost, "/sessions/"+id+"/messages", `{"text":"so happy"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var data string
	for data == "" {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: {") {
			data = strings.TrimPrefix(strings.TrimSpace(line), "data: ")
		}
	}
	assert.Contains(t, data, `"type":"reply"`)
	assert.Contains(t, data, `"input":"so happy"`)

	w = f.do(t, http.MethodDelete, "/sessions/"+id, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	var closed bool
	for !closed {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		closed = line == "event: close\n"
	}
}
