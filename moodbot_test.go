package moodbot_test

import (
	"strings"
	"testing"

	"github.com/aretw0/moodbot"
	"github.com/aretw0/moodbot/pkg/conversation"
	"github.com/aretw0/moodbot/pkg/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBot_Defaults(t *testing.T) {
	bot, err := moodbot.New()
	require.NoError(t, err)

	res := bot.Analyze("I am happy and excited")
	assert.Equal(t, 1.0, res.Score)
	assert.Equal(t, sentiment.Positive, res.Label)

	b := bot.Explain("happy sad")
	assert.Equal(t, []string{"happy"}, b.PositiveHits)
	assert.Equal(t, []string{"sad"}, b.NegativeHits)
}

func TestBot_SeedIsReproducible(t *testing.T) {
	transcript := func() []string {
		bot, err := moodbot.New(moodbot.WithSeed(99))
		require.NoError(t, err)
		chat, err := bot.NewConversation("Kim")
		require.NoError(t, err)

		var out []string
		for _, msg := range []string{"great day", "awful traffic", "ok", "love it", "sad news"} {
			reply, _ := chat.Respond(msg)
			out = append(out, reply)
		}
		return out
	}

	assert.Equal(t, transcript(), transcript())
}

func TestBot_NewConversation(t *testing.T) {
	bot, err := moodbot.New(moodbot.WithSeed(1))
	require.NoError(t, err)

	anon, err := bot.NewConversation("   ")
	require.NoError(t, err)
	assert.Empty(t, anon.UserName())

	named, err := bot.NewConversation(" Lee ")
	require.NoError(t, err)
	assert.Equal(t, "Lee", named.UserName())

	// Conversations do not share history.
	anon.Respond("happy")
	assert.Equal(t, 1, anon.Len())
	assert.Equal(t, 0, named.Len())
}

func TestBot_CustomVocabulary(t *testing.T) {
	lex, err := sentiment.NewLexicon([]string{"sunny"}, []string{"rainy"})
	require.NoError(t, err)
	responses := conversation.ResponseTable{
		sentiment.Positive: {"Bright!"},
		sentiment.Negative: {"Gloomy."},
		sentiment.Neutral:  {"Cloudy."},
	}

	bot, err := moodbot.New(moodbot.WithLexicon(lex), moodbot.WithResponses(responses))
	require.NoError(t, err)

	chat, err := bot.NewConversation("")
	require.NoError(t, err)

	reply, res := chat.Respond("so sunny")
	assert.Equal(t, "Bright!", reply)
	assert.Equal(t, sentiment.Positive, res.Label)

	// Built-in words are not part of the custom lexicon.
	assert.Equal(t, sentiment.Neutral, bot.Analyze("happy").Label)
}

func TestBot_InvalidResponses(t *testing.T) {
	_, err := moodbot.New(moodbot.WithResponses(conversation.ResponseTable{
		sentiment.Positive: {"only one label"},
	}))
	assert.ErrorIs(t, err, conversation.ErrEmptyTemplates)
}

func TestBot_HooksReachConversations(t *testing.T) {
	var labels []sentiment.Label
	bot, err := moodbot.New(moodbot.WithHooks(conversation.Hooks{
		OnExchange: func(e *conversation.ExchangeEvent) {
			labels = append(labels, e.Exchange.Sentiment.Label)
		},
	}))
	require.NoError(t, err)

	chat, err := bot.NewConversation("")
	require.NoError(t, err)
	chat.Respond("terrible")
	chat.Respond("nice")

	assert.Equal(t, []sentiment.Label{sentiment.Negative, sentiment.Positive}, labels)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(moodbot.Version))
}
