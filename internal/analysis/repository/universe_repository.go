package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/config"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	gocache "github.com/patrickmn/go-cache"
)

const universeCacheKey = "nifty50"

var errNoConstituentsTable = errors.New("no constituents table with a Symbol column")

// UniverseRepository returns the list of symbols the ranking runs over.
type UniverseRepository interface {
	// GetUniverse never fails: it falls back to the configured list.
	GetUniverse(ctx context.Context) []string
}

type universeRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
	memo       *gocache.Cache
}

func NewUniverseRepository(cfg *config.Config, log *logger.Logger) UniverseRepository {
	return &universeRepository{
		cfg:        cfg,
		log:        log,
		httpClient: &http.Client{Timeout: cfg.YahooFinance.Timeout},
		memo:       gocache.New(cfg.Trending.UniverseCacheFor, cfg.Trending.UniverseCacheFor),
	}
}

func (r *universeRepository) GetUniverse(ctx context.Context) []string {
	if v, ok := r.memo.Get(universeCacheKey); ok {
		return v.([]string)
	}

	symbols, err := r.scrape(ctx)
	if err != nil {
		r.log.WarnContext(ctx, "Failed to fetch index constituents, using fallback universe",
			logger.StringField("url", r.cfg.Trending.UniverseURL), logger.ErrorField(err))
		return append([]string(nil), r.cfg.Trending.FallbackUniverse...)
	}

	r.memo.SetDefault(universeCacheKey, symbols)
	return symbols
}

func (r *universeRepository) scrape(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.Trending.UniverseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	symbols := ParseConstituents(doc, r.cfg.Trending.UniverseSize)
	if len(symbols) == 0 {
		return nil, errNoConstituentsTable
	}
	return symbols, nil
}

// ParseConstituents reads the Symbol column of the first table that has one.
func ParseConstituents(doc *goquery.Document, limit int) []string {
	var symbols []string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		col := -1
		table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
			if col < 0 && strings.EqualFold(strings.TrimSpace(th.Text()), "Symbol") {
				col = i
			}
		})
		if col < 0 {
			return true
		}

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if limit > 0 && len(symbols) >= limit {
				return
			}
			// row headers (th scope=row) keep their column position
			if row.Find("td").Length() == 0 {
				return
			}
			cells := row.Children().Filter("td, th")
			if cells.Length() <= col {
				return
			}
			sym := utils.NormalizeSymbol(cells.Eq(col).Text())
			if sym != "" {
				symbols = append(symbols, sym)
			}
		})
		return len(symbols) == 0
	})
	return symbols
}
