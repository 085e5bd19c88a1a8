package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSymbol(t *testing.T) {
	valid := map[string]string{
		"aapl":     "AAPL",
		"  msft ":  "MSFT",
		"brk.b":    "BRK.B",
		"^gspc":    "^GSPC",
		"eurusd=x": "EURUSD=X",
		"rds-a":    "RDS-A",
	}
	for in, want := range valid {
		got, err := ParseSymbol(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "   ", "TOOLONGSYMBOL1", "AA PL", "A$", "DROP;"} {
		_, err := ParseSymbol(in)
		assert.ErrorIs(t, err, ErrInvalidSymbol, in)
	}
}

func TestArticleWithSentiment(t *testing.T) {
	a := Article{Title: "t", Description: "d"}
	b := a.WithSentiment(0.4)
	assert.Nil(t, a.Sentiment)
	require.NotNil(t, b.Sentiment)
	assert.Equal(t, 0.4, *b.Sentiment)
	assert.Equal(t, "t d", b.ScoringText())
}

func TestActionIsStrong(t *testing.T) {
	assert.True(t, ActionStrongBuy.IsStrong())
	assert.True(t, ActionStrongSell.IsStrong())
	assert.False(t, ActionBuy.IsStrong())
	assert.False(t, ActionHold.IsStrong())
}
