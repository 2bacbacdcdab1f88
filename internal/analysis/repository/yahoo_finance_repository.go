package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/config"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrNoData is returned when the provider answers without usable rows.
var ErrNoData = errors.New("provider returned no data")

const quoteSummaryModules = "price,summaryDetail,financialData"

// ChartQuery selects a chart window. Range takes precedence over Period1/Period2.
type ChartQuery struct {
	Period1  time.Time
	Period2  time.Time
	Range    string
	Interval string
}

// YahooFinanceRepository is the market data provider.
type YahooFinanceRepository interface {
	GetChart(ctx context.Context, symbol string, q ChartQuery) (*dto.ChartResult, error)
	GetQuoteSummary(ctx context.Context, symbol string) (*dto.QuoteSummaryResult, error)
}

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.YahooFinance.Timeout,
		},
		requestLimiter: requestLimiter,
	}
}

func (r *yahooFinanceRepository) GetChart(ctx context.Context, symbol string, q ChartQuery) (*dto.ChartResult, error) {
	ticker := utils.ToNSETicker(symbol)

	params := url.Values{}
	params.Set("interval", q.Interval)
	if q.Range != "" {
		params.Set("range", q.Range)
	} else {
		params.Set("period1", strconv.FormatInt(q.Period1.Unix(), 10))
		params.Set("period2", strconv.FormatInt(q.Period2.Unix(), 10))
	}
	params.Set("includePrePost", "false")
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", strings.TrimRight(r.cfg.YahooFinance.BaseURL, "/"), url.PathEscape(ticker), params.Encode())

	body, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}

	var response dto.ChartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("parse yahoo chart %s: %w", ticker, err)
	}
	if response.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart %s: %s: %w", ticker, response.Chart.Error.Description, ErrNoData)
	}
	if len(response.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, ErrNoData)
	}

	return &response.Chart.Result[0], nil
}

func (r *yahooFinanceRepository) GetQuoteSummary(ctx context.Context, symbol string) (*dto.QuoteSummaryResult, error) {
	ticker := utils.ToNSETicker(symbol)
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s", strings.TrimRight(r.cfg.YahooFinance.BaseURL, "/"), url.PathEscape(ticker), quoteSummaryModules)

	body, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote summary %s: %w", ticker, err)
	}

	var response dto.QuoteSummaryResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("parse yahoo quote summary %s: %w", ticker, err)
	}
	if response.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo quote summary %s: %s: %w", ticker, response.QuoteSummary.Error.Description, ErrNoData)
	}
	if len(response.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo quote summary %s: %w", ticker, ErrNoData)
	}

	return &response.QuoteSummary.Result[0], nil
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, endpoint string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("url", endpoint),
		zap.Int("max_request_per_minute", r.cfg.YahooFinance.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to Yahoo Finance API", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from Yahoo Finance API", fields...)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.WarnContext(ctx, "Received non-OK response from Yahoo Finance API", fields...)
		// a 404 still carries a chart/quoteSummary error document
		if resp.StatusCode == http.StatusNotFound && len(body) > 0 {
			return body, nil
		}
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return body, nil
}
