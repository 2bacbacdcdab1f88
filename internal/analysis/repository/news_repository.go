package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/config"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"

	"github.com/mmcdole/gofeed/rss"
)

const unknownSource = "Unknown"

// NewsRepository returns recent headlines for a free-text query.
type NewsRepository interface {
	Search(ctx context.Context, query string) ([]dto.NewsItem, error)
}

type newsRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
}

func NewNewsRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	return &newsRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.News.Timeout,
		},
	}
}

// SearchURL builds the Google News RSS search URL, spaces encoded as '+'.
func SearchURL(cfg config.News, query string) string {
	params := url.Values{}
	params.Set("q", query+cfg.QuerySuffix)
	params.Set("hl", cfg.Language)
	params.Set("gl", cfg.Country)
	params.Set("ceid", cfg.Edition)
	return cfg.BaseURL + "?" + params.Encode()
}

func (r *newsRepository) Search(ctx context.Context, query string) ([]dto.NewsItem, error) {
	endpoint := SearchURL(r.cfg.News, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stock-analysis/1.0)")
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to fetch news feed", logger.StringField("url", endpoint), logger.ErrorField(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Received non-OK response from news feed", logger.StringField("url", endpoint), logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("news feed: unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	fp := &rss.Parser{}
	feed, err := fp.Parse(bytes.NewReader(body))
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to parse news feed", logger.StringField("url", endpoint), logger.ErrorField(err))
		return nil, fmt.Errorf("parse news feed: %w", err)
	}

	items := make([]dto.NewsItem, 0, r.cfg.News.MaxItems)
	for _, it := range feed.Items {
		if len(items) >= r.cfg.News.MaxItems {
			break
		}
		if it == nil {
			continue
		}
		source := unknownSource
		if it.Source != nil && strings.TrimSpace(it.Source.Title) != "" {
			source = strings.TrimSpace(it.Source.Title)
		}
		items = append(items, dto.NewsItem{
			Title:       strings.TrimSpace(it.Title),
			Source:      source,
			Link:        strings.TrimSpace(it.Link),
			PublishedAt: it.PubDateParsed,
		})
	}

	r.log.DebugContext(ctx, "Fetched news items", logger.StringField("query", query), logger.IntField("count", len(items)))
	return items, nil
}
