package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompound_KnownHeadlines(t *testing.T) {
	a := NewAnalyzer()

	cases := []struct {
		text string
		want float64
	}{
		{"HDFC Bank shares plunge amid merger worries", -0.1531},
		{"TCS stock slumps after Q2 results miss estimates", -0.1531},
		{"Sensex ends flat; IT stocks drag", -0.2263},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.InDelta(t, tc.want, a.Compound(tc.text), 1e-4)
		})
	}
}

func TestCompound_Empty(t *testing.T) {
	assert.Equal(t, 0.0, NewAnalyzer().Compound(""))
}

func TestCompound_Bounded(t *testing.T) {
	a := NewAnalyzer()
	got := a.Compound("great great great excellent best profit win!!!!")
	assert.LessOrEqual(t, got, 1.0)
	assert.Greater(t, got, 0.9)
}

func TestCompound_SatisfiesPolarityModel(t *testing.T) {
	var _ PolarityModel = NewAnalyzer()
}
