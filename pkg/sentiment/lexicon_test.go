package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLexicon_Normalizes(t *testing.T) {
	lex, err := NewLexicon([]string{"  Joy ", "", "GREAT"}, []string{"Sad"})
	require.NoError(t, err)

	assert.True(t, lex.IsPositive("joy"))
	assert.True(t, lex.IsPositive("great"))
	assert.True(t, lex.IsNegative("sad"))
	assert.False(t, lex.IsPositive("Joy"), "lookups expect normalized tokens")

	pos, neg := lex.Size()
	assert.Equal(t, 2, pos)
	assert.Equal(t, 1, neg)
}

func TestNewLexicon_Empty(t *testing.T) {
	_, err := NewLexicon(nil, []string{" ", ""})
	assert.ErrorIs(t, err, ErrEmptyLexicon)
}

func TestDefaultLexicon(t *testing.T) {
	lex := DefaultLexicon()
	pos, neg := lex.Size()
	assert.Equal(t, 18, pos)
	assert.Equal(t, 17, neg)

	for w := range lex.positive {
		assert.False(t, lex.IsNegative(w), "default sets overlap on %q", w)
	}
}
