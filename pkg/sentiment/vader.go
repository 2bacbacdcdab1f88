package sentiment

import "github.com/jonreiter/govader"

// PolarityModel scores a piece of text with a compound polarity in [-1, 1].
type PolarityModel interface {
	Compound(text string) float64
}

// Analyzer is the VADER polarity model. The lexicon is compiled into the
// binary, so construction needs no files.
type Analyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer returns an Analyzer backed by the stock VADER lexicon.
func NewAnalyzer() *Analyzer {
	return &Analyzer{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the VADER compound score of text.
func (a *Analyzer) Compound(text string) float64 {
	return a.sia.PolarityScores(text).Compound
}
