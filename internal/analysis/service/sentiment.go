package service

import (
	"context"
	"fmt"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/repository"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/sentiment"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/utils"
)

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// SentimentService scores recent headlines for a query. Results are never cached.
type SentimentService interface {
	Analyze(ctx context.Context, query string) (dto.SentimentResult, error)
}

type sentimentService struct {
	news  repository.NewsRepository
	model sentiment.PolarityModel
	log   *logger.Logger
}

func NewSentimentService(news repository.NewsRepository, model sentiment.PolarityModel, log *logger.Logger) SentimentService {
	return &sentimentService{news: news, model: model, log: log}
}

func (s *sentimentService) Analyze(ctx context.Context, query string) (dto.SentimentResult, error) {
	items, err := s.news.Search(ctx, query)
	if err != nil {
		return dto.SentimentResult{}, fmt.Errorf("%w: news for %s: %w", ErrFetchFailed, query, err)
	}
	if len(items) == 0 {
		return dto.NeutralSentiment(), nil
	}

	total := 0.0
	headlines := make([]dto.Headline, 0, len(items))
	for _, it := range items {
		total += s.model.Compound(it.Title)
		headlines = append(headlines, dto.Headline{Title: it.Title, Source: it.Source, Link: it.Link})
	}
	avg := total / float64(len(items))

	result := dto.SentimentResult{
		Label:         Label(avg),
		Score:         utils.Round(avg, 4),
		HeadlineCount: len(items),
		Headlines:     headlines,
	}
	s.log.DebugContext(ctx, "Scored news sentiment",
		logger.StringField("query", query),
		logger.StringField("sentiment", result.Label),
		logger.Float64Field("score", result.Score))
	return result, nil
}

// Label maps an aggregate compound score to its sentiment label.
func Label(score float64) string {
	switch {
	case score >= positiveThreshold:
		return dto.SentimentPositive
	case score <= negativeThreshold:
		return dto.SentimentNegative
	default:
		return dto.SentimentNeutral
	}
}
