package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/akozyreva/somnus/internal/bot"
	"github.com/akozyreva/somnus/internal/cli"
	"github.com/akozyreva/somnus/internal/config"
	"github.com/akozyreva/somnus/internal/db"
	"github.com/akozyreva/somnus/internal/dialog"
	"github.com/akozyreva/somnus/internal/repository"
	"github.com/akozyreva/somnus/internal/scheduler"
	"github.com/akozyreva/somnus/internal/service"
	"github.com/akozyreva/somnus/internal/tz"
	"github.com/akozyreva/somnus/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg.Logging.Level)
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	recordRepo := repository.NewSQLiteSleepRecordRepo(database)
	reminderRepo := repository.NewSQLiteReminderRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	observer := service.NewLogUseCaseObserver(os.Stderr)
	profileSvc := service.NewProfileService(userRepo, reminderRepo, observer)
	sleepSvc := service.NewSleepService(recordRepo, observer)
	dataSvc := service.NewDataService(userRepo, recordRepo, uow, observer)

	app := &cli.App{
		Config:  *cfg,
		Logger:  logger,
		Profile: profileSvc,
		Sleep:   sleepSvc,
		Data:    dataSvc,
	}

	app.Serve = func(app *cli.App) error {
		return serve(app, userRepo, recordRepo, reminderRepo)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// serve wires the transport-facing pieces and runs the bot alongside
// the reminder scheduler until SIGINT or SIGTERM.
func serve(
	app *cli.App,
	userRepo repository.UserRepo,
	recordRepo repository.SleepRecordRepo,
	reminderRepo repository.ReminderRepo,
) error {
	cfg := app.Config
	logger := app.Logger

	if cfg.Telegram.Token == "" {
		return errors.New("telegram token is not configured (set SOMNUS_TELEGRAM_TOKEN)")
	}

	tzres, err := tz.NewDefaultResolver(userRepo, logger)
	if err != nil {
		return fmt.Errorf("building timezone resolver: %w", err)
	}

	var weatherClient *weather.Client
	var advice scheduler.AdviceProvider
	if cfg.Weather.APIKey != "" {
		weatherClient = weather.NewClient(weather.Config{
			APIKey:    cfg.Weather.APIKey,
			BaseURL:   cfg.Weather.BaseURL,
			TimeoutMs: cfg.Weather.TimeoutMs,
		})
		advice = weatherClient
	} else {
		logger.Warn("weather api key not configured, weather features disabled")
	}

	dialogs := dialog.NewDispatcher(dialog.NewStore(), &service.DialogPersister{
		Profile: app.Profile,
		Sleep:   app.Sleep,
		Data:    app.Data,
	}, logger)

	b, err := bot.New(bot.Options{
		Token:       cfg.Telegram.Token,
		PollTimeout: time.Duration(cfg.Telegram.PollTimeoutSec) * time.Second,
		Dialogs:     dialogs,
		Profile:     app.Profile,
		Sleep:       app.Sleep,
		Data:        app.Data,
		Weather:     weatherClient,
		Timezones:   tzres,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("building bot: %w", err)
	}

	evaluator := scheduler.NewEvaluator(
		userRepo, recordRepo, reminderRepo,
		tzres, advice, b.Notifier(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		evaluator.Run(ctx, time.Duration(cfg.Scheduler.TickSeconds)*time.Second)
	}()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		b.Stop()
	}()

	logger.Info("bot started", "db", cfg.Database.Path)
	b.Start()
	wg.Wait()
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	// Human-readable logs on a terminal, JSON when redirected.
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
