package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Timons172/Orders-backend-app/internal/auth"
	"github.com/Timons172/Orders-backend-app/internal/config"
	"github.com/Timons172/Orders-backend-app/internal/database"
	"github.com/Timons172/Orders-backend-app/internal/handlers"
	"github.com/Timons172/Orders-backend-app/internal/logging"
	"github.com/Timons172/Orders-backend-app/internal/notify"
	"github.com/Timons172/Orders-backend-app/internal/orders"
	"github.com/Timons172/Orders-backend-app/internal/routes"
	"github.com/Timons172/Orders-backend-app/internal/store/mysql"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	logger := logging.MustNewLogger("orders-api")
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, relying on system environment variables")
	}
	cfg := config.Load()

	// 1. --- Database ---
	db, err := database.Open(cfg.DSN)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("apply schema", zap.Error(err))
	}
	logger.Info("database connection pool established")

	st := mysql.New(db)

	// 2. --- Notification dispatcher ---
	sender := notify.NewSMTPSender(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, logger)
	dispatcher := notify.NewDispatcher(notify.Config{
		Workers:    cfg.DispatcherWorkers,
		QueueSize:  cfg.DispatcherQueue,
		AdminEmail: cfg.AdminEmail,
	}, st, sender, notify.NewLogRenderer(logger), logger)
	dispatcher.Start()

	// 3. --- Application Setup ---
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	engine := orders.New(st, dispatcher, logger)
	app := &handlers.Handlers{
		Store:  st,
		Engine: engine,
		Tokens: tokens,
		Notify: dispatcher,
		Logger: logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4. --- Background Worker ---
	// Periodically rescan every shop's availability. The dispatcher
	// does the per-shop work.
	go func() {
		ticker := time.NewTicker(cfg.AvailabilityRefresh)
		defer ticker.Stop()

		logger.Info("availability worker started",
			zap.Duration("interval", cfg.AvailabilityRefresh))

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				shops, err := st.Shops(ctx)
				if err != nil {
					logger.Error("list shops for availability refresh", zap.Error(err))
					continue
				}
				for _, shop := range shops {
					dispatcher.RecomputeAvailability(shop.ID)
				}
			}
		}
	}()

	// 5. --- Start Server ---
	router := routes.SetupRouter(app, cfg)
	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	go func() {
		logger.Info("starting orders API server", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 6. --- Graceful Shutdown ---
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	// Let queued notification jobs drain before exiting.
	dispatcher.Close()
	logger.Info("stopped")
}
