package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/service"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdvice struct {
	gotSymbol string
	advice    *dto.Advice
	err       error
}

func (s *stubAdvice) Advise(_ context.Context, symbol string) (*dto.Advice, error) {
	s.gotSymbol = symbol
	return s.advice, s.err
}

type stubTrending struct {
	candidates []dto.TrendingCandidate
	err        error
}

func (s *stubTrending) RankTrending(_ context.Context) ([]dto.TrendingCandidate, error) {
	return s.candidates, s.err
}

func (s *stubTrending) Rank(ctx context.Context, _ []string) ([]dto.TrendingCandidate, error) {
	return s.RankTrending(ctx)
}

func newServer(advice service.AdviceService, trending service.TrendingService) *echo.Echo {
	e := echo.New()
	h := NewAnalysisHandler(advice, trending, logger.NewNop())
	h.RegisterRoutes(e.Group("/api"))
	h.RegisterHealth(e)
	return e
}

func do(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestFullAnalysis(t *testing.T) {
	advice := &stubAdvice{advice: &dto.Advice{
		Symbol:  "TCS",
		Verdict: dto.VerdictHoldCaution,
		Label:   dto.VerdictHoldCaution.Label(),
	}}
	e := newServer(advice, &stubTrending{})

	rec := do(e, "/api/full-analysis/tcs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tcs", advice.gotSymbol)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "TCS", body["symbol"])
	assert.Equal(t, "HOLD_CAUTION", body["verdict"])
	assert.Equal(t, "HOLD / CAUTION", body["advice"])
}

func TestFullAnalysis_Errors(t *testing.T) {
	e := newServer(&stubAdvice{err: fmt.Errorf("%w: %q", service.ErrInvalidSymbol, "")}, &stubTrending{})
	rec := do(e, "/api/full-analysis/%20")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)

	e = newServer(&stubAdvice{err: context.DeadlineExceeded}, &stubTrending{})
	rec = do(e, "/api/full-analysis/TCS")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"context deadline exceeded"}`, rec.Body.String())
}

func TestTrendingStocks(t *testing.T) {
	e := newServer(&stubAdvice{}, &stubTrending{candidates: []dto.TrendingCandidate{{Symbol: "TCS", VolumeFactor: 2.5}}})
	rec := do(e, "/api/trending-stocks")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.TrendingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Trending stocks list.", body.Message)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "TCS", body.Results[0].Symbol)
}

func TestTrendingStocks_Empty(t *testing.T) {
	e := newServer(&stubAdvice{}, &stubTrending{})
	rec := do(e, "/api/trending-stocks")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"No major trending stocks found.","results":[]}`, rec.Body.String())
}

func TestTrendingStocks_Failure(t *testing.T) {
	e := newServer(&stubAdvice{}, &stubTrending{err: errors.New("rank trending: context canceled")})
	rec := do(e, "/api/trending-stocks")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Backend processing failed: rank trending: context canceled","results":[]}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := do(newServer(&stubAdvice{}, &stubTrending{}), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
