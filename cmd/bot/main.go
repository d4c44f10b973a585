package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prefixle/internal/api"
	"prefixle/internal/config"
	"prefixle/internal/domain"
	"prefixle/internal/handler"
	"prefixle/internal/lexical"
	"prefixle/internal/middleware"
	"prefixle/internal/repository/postgres"
	"prefixle/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Prefixle Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("syllable_mode", string(cfg.Puzzle.SyllableMode)),
		zap.String("achievement_mode", string(cfg.Puzzle.AchievementMode)),
		zap.String("plural_check", string(cfg.Puzzle.PluralCheck)),
		zap.Bool("password_required", cfg.BotPassword != ""),
	)

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories
	playerRepo := postgres.NewPlayerRepo(db)
	stateRepo := postgres.NewPuzzleStateRepo(db)

	// Puzzle rules
	selector, err := domain.NewSelector(domain.DefaultPrefixes(), cfg.Puzzle.SyllableMode)
	if err != nil {
		logger.Fatal("Failed to create puzzle selector", zap.Error(err))
	}
	ladder, err := domain.NewLadder(cfg.Puzzle.AchievementMode)
	if err != nil {
		logger.Fatal("Failed to create achievement ladder", zap.Error(err))
	}

	// Word lookup
	limiter := lexical.NewLimiter(cfg.LimiterConfig(), logger)
	lexicon := lexical.NewClient(lexical.Config{
		BaseURL:       cfg.Lookup.BaseURL,
		ProperNounTag: cfg.Lookup.ProperNounTag,
		PluralTag:     cfg.Lookup.PluralTag,
	}, limiter, logger)

	// Initialize services
	authService := service.NewAuthService(playerRepo, cfg.BotPassword)
	tracker := service.NewAchievementTracker(ladder, logger)
	puzzleService := service.NewPuzzleService(selector, lexicon, stateRepo, tracker, service.PuzzleOptions{
		PuzzleKey:   cfg.Puzzle.Key,
		PluralCheck: cfg.Puzzle.PluralCheck,
	}, logger)
	statsService := service.NewStatsService(stateRepo, cfg.Puzzle.RetentionDays, logger)

	today := puzzleService.TodayPuzzle()
	logger.Info("Today's puzzle",
		zap.String("date", today.Day.DateString()),
		zap.String("prefix", today.Prefix),
		zap.Int("syllables", today.SyllableCount),
	)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Cancelled on shutdown, aborting in-flight lookups
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize handler
	bot.Use(middleware.AuthMiddleware(authService, logger))
	h := handler.NewHandler(ctx, bot, authService, puzzleService, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start cleanup job in background
	go runCleanupJob(ctx, statsService, logger)

	// Optional JSON API
	apiDone := make(chan struct{})
	if cfg.HTTP.Addr != "" {
		server := api.NewServer(api.Config{
			Addr:           cfg.HTTP.Addr,
			RateLimitRPS:   cfg.HTTP.RateLimitRPS,
			RateLimitBurst: cfg.HTTP.RateLimitBurst,
		}, authService, puzzleService, logger)

		go func() {
			defer close(apiDone)
			if err := server.Run(ctx); err != nil {
				logger.Error("HTTP API stopped with error", zap.Error(err))
			}
		}()
	} else {
		close(apiDone)
	}

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	cancel()
	bot.Stop()
	<-apiDone

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case err == migrate.ErrNoChange:
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runCleanupJob drops stale puzzle states once at startup and then daily
func runCleanupJob(ctx context.Context, statsService *service.StatsService, logger *zap.Logger) {
	if err := statsService.CleanupOldData(); err != nil {
		logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			logger.Info("Running scheduled cleanup")
			if err := statsService.CleanupOldData(); err != nil {
				logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
		}
	}
}
