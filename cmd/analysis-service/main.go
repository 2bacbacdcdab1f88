package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/config"
	delivery "github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/delivery/http"
	_ "github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/docs"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/repository"
	"github.com/YashDwivedi1205/AIFSA-Project/internal/analysis/service"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/common"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/logger"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/postgres"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/redis"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/sentiment"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/telegram"
	"github.com/YashDwivedi1205/AIFSA-Project/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the analysis service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Analysis Service", logger.Field("name", cfg.App.Name), logger.StringField("cache_driver", cfg.Cache.Driver))

	store, closeStore := openCacheStore(cfg, appLogger)
	defer closeStore()

	// Initialize repositories
	yahooRepo := repository.NewYahooFinanceRepository(cfg, appLogger)
	newsRepo := repository.NewNewsRepository(cfg, appLogger)
	universeRepo := repository.NewUniverseRepository(cfg, appLogger)

	// Initialize services
	cache := service.NewStaleCache(store, appLogger, cfg.Cache.FetchTimeout)
	appLogger.Info("Market data cache ready", logger.Field("pass_through", cache.PassThrough()))
	marketSvc := service.NewMarketDataService(yahooRepo, cache, appLogger)
	sentimentSvc := service.NewSentimentService(newsRepo, sentiment.NewAnalyzer(), appLogger)
	trendingSvc := service.NewTrendingService(cfg, marketSvc, universeRepo, appLogger)
	adviceSvc := service.NewAdviceService(cfg, marketSvc, sentimentSvc, appLogger)

	var warmer *service.CacheWarmer
	if cfg.Warmer.Enabled {
		warmer = startWarmer(ctx, cfg, trendingSvc, appLogger)
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, id string) {
			c.SetRequest(c.Request().WithContext(logger.WithRequestID(c.Request().Context(), id)))
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				appLogger.WarnContext(c.Request().Context(), "HTTP request failed",
					logger.StringField("method", v.Method), logger.StringField("uri", v.URI),
					logger.IntField("status", v.Status), logger.ErrorField(v.Error))
				return nil
			}
			appLogger.InfoContext(c.Request().Context(), "HTTP request",
				logger.StringField("method", v.Method), logger.StringField("uri", v.URI),
				logger.IntField("status", v.Status), logger.DurationField("latency", v.Latency))
			return nil
		},
	}))

	// Initialize handlers and routes
	analysisHandler := delivery.NewAnalysisHandler(adviceSvc, trendingSvc, appLogger)
	analysisHandler.RegisterRoutes(e.Group("/api"))
	analysisHandler.RegisterHealth(e)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	utils.GoSafe(func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}, func(recovered interface{}, stack []byte) {
		appLogger.Error("HTTP server panicked", logger.Field("panic", recovered), logger.StringField("stack", string(stack)))
		stop()
	})

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	if warmer != nil {
		<-warmer.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// openCacheStore connects the configured store. Any failure leaves the cache
// in pass-through mode rather than stopping the service.
func openCacheStore(cfg *config.Config, appLogger *logger.Logger) (repository.CacheStore, func()) {
	noop := func() {}

	switch cfg.Cache.Driver {
	case common.CacheDriverRedis:
		client, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Warn("Cache store unavailable, running without cache", logger.StringField("driver", cfg.Cache.Driver), logger.ErrorField(err))
			return nil, noop
		}
		return repository.NewRedisCacheStore(client.Client, cfg.Cache.KeyPrefix), func() { _ = client.Close() }

	case common.CacheDriverPostgres:
		db, err := postgres.NewDB(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			TimeZone:        cfg.Database.TimeZone,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
		})
		if err != nil {
			appLogger.Warn("Cache store unavailable, running without cache", logger.StringField("driver", cfg.Cache.Driver), logger.ErrorField(err))
			return nil, noop
		}
		closeDB := noop
		if sqlDB, err := db.DB.DB(); err == nil {
			closeDB = func() { _ = sqlDB.Close() }
		}
		return repository.NewPostgresCacheStore(db.DB), closeDB

	case common.CacheDriverMemory:
		return repository.NewMemoryCacheStore(), noop

	default:
		appLogger.Info("Cache store disabled, every request fetches from the provider")
		return nil, noop
	}
}

func startWarmer(ctx context.Context, cfg *config.Config, trendingSvc service.TrendingService, appLogger *logger.Logger) *service.CacheWarmer {
	var notifier telegram.Notifier
	if cfg.Warmer.Notify {
		n, err := telegram.NewClient(cfg.Telegram)
		if err != nil {
			appLogger.Warn("Telegram digest disabled", logger.ErrorField(err))
		} else {
			notifier = n
		}
	}

	warmer, err := service.NewCacheWarmer(cfg, trendingSvc, notifier, appLogger)
	if err != nil {
		appLogger.Error("Cache warmer disabled", logger.ErrorField(err))
		return nil
	}
	if err := warmer.Start(ctx); err != nil {
		appLogger.Error("Cache warmer disabled", logger.ErrorField(err))
		return nil
	}
	return warmer
}

// @title Stock Analysis API
// @version 1.0
// @description Trending NSE stocks and per-stock buy/hold/sell analysis.
// @BasePath /api
func main() {
	rootCmd := &cobra.Command{Use: "analysis-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-analysis.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing analysis-service CLI: %s\n", err)
		os.Exit(1)
	}
}
