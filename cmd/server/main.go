package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/galamath/galamath/internal/api"
	"github.com/galamath/galamath/internal/cache"
	"github.com/galamath/galamath/internal/config"
	"github.com/galamath/galamath/internal/db"
	"github.com/galamath/galamath/internal/jobs"
	"github.com/galamath/galamath/internal/llm"
	"github.com/galamath/galamath/internal/logger"
	"github.com/galamath/galamath/internal/notify"
	"github.com/galamath/galamath/internal/ratelimit"
	"github.com/galamath/galamath/internal/repository/sqlstore"
	"github.com/galamath/galamath/internal/services"
	"github.com/galamath/galamath/internal/speech"
	"github.com/galamath/galamath/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Galamath Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("llm_provider=%s", cfg.LLMProvider)
	log.Debug("notify_worker_count=%d", cfg.NotifyWorkerCount)
	log.Debug("notify_queue_size=%d", cfg.NotifyQueueSize)
	log.Debug("stats_cache_ttl=%v", cfg.StatsCacheTTL)
	log.Debug("rate_limit=%.2f rps, burst %d", cfg.RateLimitRPS, cfg.RateLimitBurst)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logger.NewContext(ctx, log)

	dsn := cfg.DBPath
	if cfg.DBDriver == db.DriverPostgres {
		dsn = cfg.DatabaseURL
	}
	database, err := db.Open(ctx, cfg.DBDriver, dsn)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	statsCache, closeCache := cache.New(ctx, cfg.RedisAddr)
	defer closeCache()

	notifier, err := notify.New(ctx, notify.Config{
		To:       cfg.NotificationEmail,
		From:     cfg.SESFromEmail,
		FromName: "Galamath",
		Region:   cfg.AWSRegion,
	})
	if err != nil {
		log.Error("failed to initialize notifications: %v", err)
		os.Exit(1)
	}

	provider, err := llm.NewProvider(ctx, llm.Config{
		Provider:  cfg.LLMProvider,
		OpenAI:    llm.OpenAIConfig{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel},
		Anthropic: llm.AnthropicConfig{APIKey: cfg.AnthropicAPIKey, Model: cfg.AnthropicModel},
		Gemini:    llm.GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel},
		Retry:     llm.DefaultRetryConfig(),
	})
	if err != nil {
		log.Error("failed to initialize LLM provider: %v", err)
		os.Exit(1)
	}
	log.Info("tutoring model: %s", provider.ModelID())

	var synth speech.Synthesizer
	if cfg.OpenAIAPIKey != "" {
		client, err := speech.NewClient(speech.Config{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.TTSModel,
			Voice:  cfg.TTSVoice,
			Speed:  cfg.TTSSpeed,
		})
		if err != nil {
			log.Error("failed to initialize speech: %v", err)
			os.Exit(1)
		}
		synth = client
	} else {
		log.Warn("speech disabled: OPENAI_API_KEY not set")
	}

	notifyPool := worker.NewPool(cfg.NotifyWorkerCount, cfg.NotifyQueueSize)
	jobQueue := jobs.NewWorkerQueue(notifyPool, notifier)

	limiter := ratelimit.NewInMemory(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx, 5*time.Minute)

	attemptRepo := sqlstore.NewAttemptRepository(database)
	lessonRepo := sqlstore.NewLessonRepository(database)

	srv := &api.Server{
		DB:            database,
		StatsService:  services.NewStatsService(attemptRepo, statsCache, cfg.StatsCacheTTL),
		ResultService: services.NewResultService(attemptRepo, statsCache, jobQueue),
		LessonService: services.NewLessonService(lessonRepo),
		TutorService:  services.NewTutorService(provider),
		AuthService:   services.NewAuthService(cfg.Passcode),
		RosterService: services.NewRosterService(cfg.Users, cfg.UserGrades),
		Speech:        synth,
		Limiter:       limiter,
	}

	notifyPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Queued emails are sent before the pool exits.
	log.Debug("stopping notification pool")
	notifyPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("Galamath Server Stopped")
	log.Info("===========================================")
}
