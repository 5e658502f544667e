package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"entitysearch/cmd/internal/config"
	"entitysearch/cmd/internal/domain/dataset"
	"entitysearch/cmd/internal/domain/sqlite"
	"entitysearch/cmd/internal/domain/sqlite/repository"
	"entitysearch/cmd/internal/history"
	"entitysearch/cmd/internal/http/handler"
	"entitysearch/cmd/internal/infrastructure/aws/storage"
	"entitysearch/cmd/internal/infrastructure/localstore/boltdb"
	"entitysearch/cmd/internal/infrastructure/minhareceita"
	"entitysearch/cmd/internal/metrics"
	"entitysearch/cmd/internal/search"
	"entitysearch/cmd/internal/service"
	"entitysearch/cmd/internal/service/jobs"
	"entitysearch/cmd/internal/utils/uid"
	"entitysearch/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads env vars depending on environment
	if err := config.LoadEnvironment(ctx); err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	validate := validator.New()
	validators.Register(validate)
	uid.Init(cfg.MachineID)

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	receita, err := minhareceita.NewClient(cfg.MinhaReceitaURL)
	if err != nil {
		log.Fatalf("failed to create registry client: %v", err)
	}

	// Recent searches live in their own bbolt file
	kv, err := boltdb.New(ctx, cfg.HistoryDBPath)
	if err != nil {
		log.Fatalf("failed to open history store: %v", err)
	}
	defer kv.Close()

	store := history.NewStore(kv, uid.Generate)
	store.Load(ctx)

	exporter := newExporter(ctx, cfg)

	entities := dataset.New()
	backend, err := search.NewBackend(entities, cfg.SearchLatency, cfg.SearchPoolSize)
	if err != nil {
		log.Fatalf("failed to start search backend: %v", err)
	}
	defer backend.Release()
	predictor := search.NewPredictor(backend.Entities(), cfg.SuggestDebounce)

	m := metrics.New(prometheus.DefaultRegisterer)

	// Gettings repos
	companyRepo := repository.NewCompanyRepository(db)

	// Getting services
	historyService := service.NewHistoryService(store, exporter, m)
	searchService := service.NewSearchService(backend, predictor, historyService, validate, m)
	utilService := service.NewUtilService(receita, companyRepo, m)

	// Gettings handler
	searchRoutes := handler.NewSearchRoute(searchService)
	historyRoutes := handler.NewHistoryRoute(historyService)
	utilRoutes := handler.NewUtilRoute(utilService)

	cleaner := jobs.NewCompanyCacheCleaner(companyRepo, cfg.CompanyCacheTTL, cfg.CacheSweepEvery)
	go cleaner.Start(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Session-Id"},
	}))
	e.Use(requestLogger())

	// Search
	e.GET("/api/search", searchRoutes.Search)
	e.GET("/api/search/suggestions", searchRoutes.Suggest)
	e.GET("/api/entities/:id", searchRoutes.GetEntity)

	// Recent searches
	e.GET("/api/recent-searches", historyRoutes.GetRecentSearches)
	e.DELETE("/api/recent-searches", historyRoutes.ClearRecentSearches)
	e.POST("/api/recent-searches/export", historyRoutes.ExportRecentSearches)

	// Registry lookups
	e.GET("/api/companies/:cnpj", utilRoutes.GetCompany)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	go func() {
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}

// newExporter returns nil when no bucket is configured, which disables the
// export route.
func newExporter(ctx context.Context, cfg config.Config) storage.S3Client {
	if !cfg.ExportEnabled() {
		log.Info("S3_BUCKET_NAME not set, recent searches export disabled")
		return nil
	}

	client, err := storage.NewStorageClient(ctx, cfg.S3Region, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("failed to create S3 client: %v", err)
	}
	return client
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Errorf("%s %s %d %s: %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	})
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
