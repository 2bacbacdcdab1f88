package http

import (
	"errors"
	"net/http"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/dto"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/service"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	msgTrendingFound = "Trending stocks list."
	msgTrendingEmpty = "No major trending stocks found."
	msgBackendFailed = "Backend processing failed: "
)

// AnalysisHandler serves the advice and trending endpoints.
type AnalysisHandler struct {
	adviceService   service.AdviceService
	trendingService service.TrendingService
	logger          *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(adviceService service.AdviceService, trendingService service.TrendingService, logger *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{adviceService: adviceService, trendingService: trendingService, logger: logger}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/full-analysis/:symbol", h.FullAnalysis)
	g.GET("/trending-stocks", h.TrendingStocks)
}

// RegisterHealth registers the liveness route on the root router.
func (h *AnalysisHandler) RegisterHealth(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// FullAnalysis godoc
// @Summary Full analysis of one stock
// @Description Technical, fundamental and news sentiment signals combined into one recommendation
// @Tags analysis
// @Produce  json
// @Param   symbol  path    string  true    "NSE symbol, e.g. TCS"
// @Success 200 {object} dto.Advice
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /full-analysis/{symbol} [get]
func (h *AnalysisHandler) FullAnalysis(c echo.Context) error {
	ctx := c.Request().Context()
	advice, err := h.adviceService.Advise(ctx, c.Param("symbol"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidSymbol) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.ErrorContext(ctx, "Full analysis failed", logger.StringField("symbol", c.Param("symbol")), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, advice)
}

// TrendingStocks godoc
// @Summary Trending stocks
// @Description Index constituents ranked by today's volume against the recent average
// @Tags analysis
// @Produce  json
// @Success 200 {object} dto.TrendingResponse
// @Failure 500 {object} dto.TrendingResponse
// @Router /trending-stocks [get]
func (h *AnalysisHandler) TrendingStocks(c echo.Context) error {
	ctx := c.Request().Context()
	candidates, err := h.trendingService.RankTrending(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Trending ranking failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.TrendingResponse{
			Success: false,
			Message: msgBackendFailed + err.Error(),
			Results: []dto.TrendingCandidate{},
		})
	}

	message := msgTrendingFound
	if len(candidates) == 0 {
		message = msgTrendingEmpty
		candidates = []dto.TrendingCandidate{}
	}
	return c.JSON(http.StatusOK, dto.TrendingResponse{Success: true, Message: message, Results: candidates})
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *AnalysisHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
