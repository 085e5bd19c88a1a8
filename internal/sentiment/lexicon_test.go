package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLexicon_Normalizes(t *testing.T) {
	lex, err := NewLexicon(map[string]float64{" Rally ": 0.6}, map[string]float64{"CRASH": 0.9})
	require.NoError(t, err)
	assert.Equal(t, 0.6, lex.Weight("rally"))
	assert.Equal(t, -0.9, lex.Weight("crash"))
	assert.Zero(t, lex.Weight("other"))
}

func TestNewLexicon_Rejects(t *testing.T) {
	cases := []struct {
		name string
		pos  map[string]float64
		neg  map[string]float64
	}{
		{"empty word", map[string]float64{"  ": 0.5}, nil},
		{"phrase", map[string]float64{"record high": 0.7}, nil},
		{"punctuation", nil, map[string]float64{"sell-off": 0.7}},
		{"zero weight", map[string]float64{"gain": 0}, nil},
		{"negative weight", nil, map[string]float64{"loss": -0.6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLexicon(tc.pos, tc.neg)
			assert.Error(t, err)
		})
	}
}

func TestDefaultLexicon(t *testing.T) {
	pos, neg := DefaultLexicon().Size()
	assert.Equal(t, 28, pos)
	assert.Equal(t, 28, neg)
	assert.Equal(t, 0.8, DefaultLexicon().Weight("bull"))
	assert.Equal(t, -0.9, DefaultLexicon().Weight("crash"))
}
