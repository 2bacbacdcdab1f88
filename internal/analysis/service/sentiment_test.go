package service

import (
	"context"
	"testing"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/sentiment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentimentService_Analyze(t *testing.T) {
	news := &fakeNews{items: []dto.NewsItem{
		{Title: "TCS wins record deal", Source: "Mint", Link: "https://example.com/1"},
		{Title: "TCS shares flat", Source: "Unknown", Link: "https://example.com/2"},
		{Title: "Analysts cut TCS target", Source: "ET", Link: "https://example.com/3"},
	}}
	model := fakeModel{
		"TCS wins record deal":    0.6,
		"TCS shares flat":         0,
		"Analysts cut TCS target": -0.2,
	}
	svc := NewSentimentService(news, model, logger.NewNop())

	got, err := svc.Analyze(context.Background(), "TCS")
	require.NoError(t, err)
	assert.Equal(t, dto.SentimentPositive, got.Label)
	assert.Equal(t, 0.1333, got.Score)
	assert.Equal(t, 3, got.HeadlineCount)
	require.Len(t, got.Headlines, 3)
	assert.Equal(t, dto.Headline{Title: "TCS wins record deal", Source: "Mint", Link: "https://example.com/1"}, got.Headlines[0])
}

func TestSentimentService_NoHeadlinesIsNeutral(t *testing.T) {
	svc := NewSentimentService(&fakeNews{}, fakeModel{}, logger.NewNop())

	got, err := svc.Analyze(context.Background(), "TCS")
	require.NoError(t, err)
	assert.Equal(t, dto.SentimentNeutral, got.Label)
	assert.Zero(t, got.Score)
	assert.Zero(t, got.HeadlineCount)
	assert.NotNil(t, got.Headlines)
}

func TestSentimentService_NewsFailure(t *testing.T) {
	svc := NewSentimentService(&fakeNews{err: errProviderDown}, fakeModel{}, logger.NewNop())

	_, err := svc.Analyze(context.Background(), "TCS")
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, errProviderDown)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, dto.SentimentPositive, Label(0.1))
	assert.Equal(t, dto.SentimentPositive, Label(0.8))
	assert.Equal(t, dto.SentimentNeutral, Label(0.0999))
	assert.Equal(t, dto.SentimentNeutral, Label(-0.0999))
	assert.Equal(t, dto.SentimentNegative, Label(-0.1))
	assert.Equal(t, dto.SentimentNegative, Label(-0.9))
}

func TestSentimentService_VaderHeadlines(t *testing.T) {
	news := &fakeNews{items: []dto.NewsItem{
		{Title: "Sensex ends flat; IT stocks drag", Source: "ET", Link: "https://example.com/1"},
	}}
	svc := NewSentimentService(news, sentiment.NewAnalyzer(), logger.NewNop())

	got, err := svc.Analyze(context.Background(), "SENSEX")
	require.NoError(t, err)
	assert.Equal(t, dto.SentimentNegative, got.Label)
	assert.Equal(t, -0.2263, got.Score)
}
