package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Timons172/Orders-backend-app/internal/config"
	"github.com/Timons172/Orders-backend-app/internal/database"
	"github.com/Timons172/Orders-backend-app/internal/importer"
	"github.com/Timons172/Orders-backend-app/internal/logging"
	"github.com/Timons172/Orders-backend-app/internal/notify"
	"github.com/Timons172/Orders-backend-app/internal/store/mysql"
)

// Loads one or more YAML price lists into the catalog:
//
//	go run ./cmd/import data/shop1.yaml data/shop2.yaml
func main() {
	logger := logging.MustNewLogger("orders-import")
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, relying on system environment variables")
	}
	cfg := config.Load()

	flag.Parse()
	files := flag.Args()
	if len(files) == 0 {
		logger.Fatal("usage: import <price-list.yaml> [more.yaml ...]")
	}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("apply schema", zap.Error(err))
	}

	st := mysql.New(db)

	// Imports reuse the dispatcher so thumbnail warming runs the same
	// way it does in the API process.
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
	defer dispatcher.Close()

	im := importer.New(st, dispatcher, logger)
	ctx := context.Background()

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Fatal("read price list", zap.String("path", path), zap.Error(err))
		}
		if _, err := im.Run(ctx, data); err != nil {
			logger.Fatal("import price list", zap.String("path", path), zap.Error(err))
		}
	}
}
