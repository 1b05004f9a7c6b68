package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/securedevx/Bitecraft-footweb/internal/cart"
	"github.com/securedevx/Bitecraft-footweb/internal/config"
	"github.com/securedevx/Bitecraft-footweb/internal/db"
	"github.com/securedevx/Bitecraft-footweb/internal/events"
	httpapi "github.com/securedevx/Bitecraft-footweb/internal/http"
	"github.com/securedevx/Bitecraft-footweb/internal/logging"
	"github.com/securedevx/Bitecraft-footweb/internal/menu"
	"github.com/securedevx/Bitecraft-footweb/internal/order"
	"github.com/securedevx/Bitecraft-footweb/internal/presentation"
	"github.com/securedevx/Bitecraft-footweb/internal/storage"
)

type orderPublisher interface {
	order.Publisher
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.AppEnv, cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slots, closeSlots := mustOpenSlots(ctx, cfg, logger)
	defer closeSlots()

	catalog, err := menu.Load(cfg.MenuFile)
	if err != nil {
		logger.Fatal("load menu", zap.String("file", cfg.MenuFile), zap.Error(err))
	}

	publisher := mustPublisher(cfg, logger)

	engine := cart.NewEngine(storage.NewCartStore(slots, logging.Component(logger, "storage")), logging.Component(logger, "cart"))
	engine.Open(ctx)

	cartView, err := presentation.NewSync(logging.Component(logger, "presentation"))
	if err != nil {
		logger.Fatal("create presentation sync", zap.Error(err))
	}
	engine.Subscribe(cartView.Observe)

	assembler := order.NewAssembler(
		engine,
		storage.NewOrderStore(slots, logging.Component(logger, "storage")),
		publisher,
		logging.Component(logger, "order"),
		order.Config{
			ConfirmationPage: cfg.ConfirmationPage,
			RedirectDelay:    cfg.RedirectDelay,
			Navigate: func(target string) {
				logger.Info("redirecting to confirmation", zap.String("target", target))
			},
		},
	)

	handler := httpapi.NewHandler(engine, catalog, assembler, cartView, cfg.RequestTimeout, logging.Component(logger, "http"))
	router := httpapi.NewRouter(handler, cfg.CORSAllowOrigins, logging.Component(logger, "http"))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bitecraft listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown error", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		logger.Error("publisher close error", zap.Error(err))
	}
}

// mustOpenSlots returns Postgres backed slots when a DSN is configured and
// in-memory slots otherwise.
func mustOpenSlots(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Slots, func()) {
	if cfg.DatabaseDSN == "" {
		logger.Warn("BITECRAFT_DB_DSN not set, cart is kept in memory")
		return storage.NewMemorySlots(), func() {}
	}

	if err := db.RunMigrations(cfg.DatabaseDSN, logging.Component(logger, "db")); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("open db pool", zap.Error(err))
	}
	return storage.NewPostgresSlots(pool), pool.Close
}

func mustPublisher(cfg config.Config, logger *zap.Logger) orderPublisher {
	if cfg.RabbitMQURL == "" {
		logger.Warn("RABBITMQ_URL not set, placed orders are only logged")
		return events.NewLogPublisher(logging.Component(logger, "events"))
	}

	conn, err := events.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatal("connect to rabbitmq", zap.Error(err))
	}
	p, err := events.NewRabbitPublisher(conn, logging.Component(logger, "events"))
	if err != nil {
		_ = conn.Close()
		logger.Fatal("create publisher", zap.Error(err))
	}
	return &connPublisher{RabbitPublisher: p, closeConn: conn.Close}
}

type connPublisher struct {
	*events.RabbitPublisher
	closeConn func() error
}

func (p *connPublisher) Close() error {
	return errors.Join(p.RabbitPublisher.Close(), p.closeConn())
}
