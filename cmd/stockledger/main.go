package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/stockledger/internal/app"
	"github.com/odyssey-erp/stockledger/internal/inventory"
	"github.com/odyssey-erp/stockledger/internal/memstore"
	"github.com/odyssey-erp/stockledger/internal/observability"
	"github.com/odyssey-erp/stockledger/internal/platform/cache"
	"github.com/odyssey-erp/stockledger/internal/platform/db"
	"github.com/odyssey-erp/stockledger/internal/reports"
	"github.com/odyssey-erp/stockledger/internal/sales"
	"github.com/odyssey-erp/stockledger/internal/shared"
	"github.com/odyssey-erp/stockledger/report"
)

const shutdownTimeout = 10 * time.Second

// stores bundles the repositories selected by STORE_DRIVER.
type stores struct {
	products inventory.RepositoryPort
	sales    sales.RepositoryPort
	close    func()
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("stockledger stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	var idempotency sales.IdempotencyPort
	if redisClient != nil {
		defer closeRedis(redisClient, logger)
		idempotency = shared.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL)
		logger.Info("idempotency keys enabled", slog.Duration("ttl", cfg.IdempotencyTTL))
	}

	renderer, err := newRenderer(ctx, cfg, logger)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()

	inventoryHandler := inventory.NewHandler(logger, inventory.NewService(st.products))
	salesHandler := sales.NewHandler(logger, sales.NewService(st.sales, idempotency, metrics).WithLogger(logger))
	reportsHandler := reports.NewHandler(logger, reports.NewService(st.sales, renderer))

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		InventoryHandler: inventoryHandler,
		SalesHandler:     salesHandler,
		ReportsHandler:   reportsHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func openStores(ctx context.Context, cfg *app.Config, logger *slog.Logger) (stores, error) {
	if cfg.StoreDriver == app.StoreMemory {
		logger.Warn("using in-memory store, data is lost on exit")
		mem := memstore.New()
		return stores{products: mem, sales: mem, close: func() {}}, nil
	}

	pool, err := db.New(ctx, db.Options{DSN: cfg.PGDSN, ConnectTimeout: 10 * time.Second})
	if err != nil {
		return stores{}, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return stores{}, err
		}
		logger.Info("database schema ready")
	}
	return stores{
		products: inventory.NewRepository(pool),
		sales:    sales.NewRepository(pool),
		close:    pool.Close,
	}, nil
}

func newRenderer(ctx context.Context, cfg *app.Config, logger *slog.Logger) (reports.Renderer, error) {
	if cfg.PDFEngine != app.PDFEngineGotenberg {
		return reports.NewFPDFRenderer(cfg.ReportTitle), nil
	}
	client := report.NewClient(cfg.GotenbergURL)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		logger.Warn("gotenberg ping failed", slog.String("url", cfg.GotenbergURL), slog.Any("error", err))
	}
	renderer, err := reports.NewGotenbergRenderer(cfg.ReportTitle, client)
	if err != nil {
		return nil, fmt.Errorf("build gotenberg renderer: %w", err)
	}
	return renderer, nil
}

func closeRedis(client *redis.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Warn("redis close", slog.Any("error", err))
	}
}
