package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"finboard/api"
	"finboard/brapi"
	"finboard/cache"
	"finboard/config"
	"finboard/database"
	"finboard/helpers"
	"finboard/importer"
	"finboard/realtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// App represents the main application
type App struct {
	config    *config.Config
	db        *database.Database
	repo      *database.Repository
	redis     *cache.RedisClient
	broker    *realtime.Broker
	events    *cache.EventBus
	apiServer *api.Server
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	SetupLogging(cfg)
	return &App{
		config: cfg,
		db:     nil, // Will be initialized in Start()
		redis:  nil, // Will be initialized in Start()
	}
}

// SetupLogging configures the global zerolog logger from the config
func SetupLogging(cfg *config.Config) {
	zerolog.SetGlobalLevel(cfg.Level())
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}

// Start starts the application and blocks until a shutdown signal
func (a *App) Start() error {
	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Display settings are checked before anything is opened
	formatter, err := helpers.NewFormatter(a.config.Display.Currency, a.config.Display.Locale)
	if err != nil {
		return fmt.Errorf("invalid display settings: %w", err)
	}

	// 1. Database Connection
	log.Info().Msg("🗄️  Connecting to database...")

	dbPort, err := a.config.DatabasePortInt()
	if err != nil {
		return err
	}

	db, err := database.Connect(
		a.config.DatabaseHost,
		dbPort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db

	// 2. Schema (AutoMigrate + indexes)
	a.repo = database.NewRepository(a.db)
	if err := a.repo.InitSchema(); err != nil {
		a.db.Close()
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	if a.config.SeedDefinitions {
		n, err := a.repo.SeedDefinitions(DefaultDefinitions())
		if err != nil {
			a.db.Close()
			return fmt.Errorf("seeding indicator definitions failed: %w", err)
		}
		if n > 0 {
			log.Info().Int("definitions", n).Msg("🌱 Seeded indicator definitions")
		}
	}

	// 3. Redis Connection (optional)
	log.Info().Msg("🧠 Connecting to Redis...")
	a.redis = cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)

	// 4. Realtime Broker and event bus
	a.broker = realtime.NewBroker()
	go a.broker.Run()

	a.events = cache.NewEventBus(a.redis, a.broker)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.events.Run(ctx)
	}()

	// 5. Import pipeline
	quotes := brapi.NewClient(a.config.Brapi.BaseURL, a.config.Brapi.Token, a.config.Brapi.Timeout)
	if a.config.Brapi.Token == "" {
		log.Warn().Msg("⚠️  BRAPI_TOKEN not set, imports may be rate limited")
	}
	statusStore := cache.NewImportStatusStore(a.redis)
	imports := importer.New(a.repo, quotes, a.events, statusStore)

	// 6. API Server
	a.apiServer = api.NewServer(a.repo, imports, a.events, statusStore, a.broker, formatter)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.apiServer.Start(a.config.HTTPPort)
	}()

	// 7. Wait for interrupt and perform graceful shutdown
	err = a.gracefulShutdown(cancel, serverErr)
	wg.Wait()
	return err
}

// gracefulShutdown handles graceful shutdown with timeout
func (a *App) gracefulShutdown(cancel context.CancelFunc, serverErr <-chan error) error {
	// Setup signal handling
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case <-interrupt:
		log.Info().Msg("🛑 Shutdown signal received, initiating graceful shutdown...")
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("⚠️  API Server failed")
			runErr = fmt.Errorf("api server: %w", err)
		}
	}

	// Cancel context to stop all goroutines
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	shutdownComplete := make(chan struct{})
	go func() {
		if a.apiServer != nil {
			if err := a.apiServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Error stopping API server")
			}
		}

		if a.broker != nil {
			a.broker.Stop()
		}

		// Close database connection
		if a.db != nil {
			if err := a.db.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing database")
			} else {
				log.Info().Msg("✅ Database connection closed")
			}
		}

		// Close Redis connection
		if a.redis != nil {
			if err := a.redis.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing redis")
			} else {
				log.Info().Msg("✅ Redis connection closed")
			}
		}

		close(shutdownComplete)
	}()

	// Wait for shutdown to complete or timeout
	select {
	case <-shutdownComplete:
		log.Info().Msg("✅ Graceful shutdown completed")
		return runErr
	case <-shutdownCtx.Done():
		log.Warn().Msg("⚠️  Shutdown timeout exceeded, forcing exit")
		return fmt.Errorf("shutdown timeout")
	}
}
