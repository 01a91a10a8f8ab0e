package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"checador-report/internal/cli"
	"checador-report/internal/config"
	"checador-report/internal/handler"
	"checador-report/internal/repository"
	"checador-report/internal/service"
	"checador-report/internal/spreadsheet"
	"checador-report/pkg/nocodb"
	"checador-report/pkg/telegram"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GetAppConfig()
	logrus.SetLevel(cfg.LogLevel)

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(cfg.LogLevel)

	// Локальная копия таблицы ожидаемых часов
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting database instance: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.WithError(err).Warn("Error closing database")
		}
	}()

	repo, err := repository.NewGormExpectedHoursRepository(db, logger)
	if err != nil {
		return fmt.Errorf("creating expected hours repository: %w", err)
	}

	app := &cli.App{
		Logger: logger,
		Repo:   repo,
		Reader: spreadsheet.NewReader(logger),
		Writer: spreadsheet.NewWriter(logger),
	}

	if cfg.NocoDB.Enabled() {
		client := nocodb.NewClient(nocodb.Config{
			BaseURL:  cfg.NocoDB.APIURL,
			APIKey:   cfg.NocoDB.APIKey,
			ViewID:   cfg.NocoDB.ViewID,
			Table:    cfg.NocoDB.TableName,
			PageSize: cfg.NocoDB.PageSize,
			Timeout:  cfg.NocoDB.Timeout,
		})
		app.Remote = service.NewRemoteProvider(client, logger)
		app.Source = client.Source()
	} else {
		logger.Info("NocoDB is not configured, using local expected hours snapshot only")
	}

	app.IsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
	app.RunBot = func(ctx context.Context, reports handler.ReportGenerator, hours handler.HoursSource) error {
		return runBot(ctx, cfg, logger, reports, hours)
	}

	// Обработка сигналов для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func runBot(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *logrus.Logger,
	reports handler.ReportGenerator,
	hours handler.HoursSource,
) error {
	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramDebug)
	if err != nil {
		return fmt.Errorf("creating Telegram client: %w", err)
	}
	logger.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(client, reports, hours, cfg)
	updates := client.Updates()

	go func() {
		<-ctx.Done()
		client.Stop()
	}()

	logger.Info("Bot started. Press Ctrl+C to stop.")
	botHandler.HandleUpdates(ctx, updates)
	logger.Info("Bot stopped gracefully")

	return nil
}
