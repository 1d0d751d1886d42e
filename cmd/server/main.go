package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/storyclass/storyclass-backend/internal/config"
	"github.com/storyclass/storyclass-backend/internal/database"
	"github.com/storyclass/storyclass-backend/internal/handler"
	"github.com/storyclass/storyclass-backend/internal/logger"
	"github.com/storyclass/storyclass-backend/internal/provider"
	"github.com/storyclass/storyclass-backend/internal/router"
	"github.com/storyclass/storyclass-backend/internal/service"
	"github.com/storyclass/storyclass-backend/internal/store"
	"github.com/storyclass/storyclass-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Bool("openai", cfg.HasOpenAI()).
		Msg("Starting StoryClass Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── AI Provider ───────────────────────────────────────────────────
	// Without a key the generate endpoint serves demo material and the
	// speech endpoints answer with a configuration error.
	var (
		textGen     provider.TextGenerator
		transcriber provider.Transcriber
		synthesizer provider.SpeechSynthesizer
	)
	if cfg.HasOpenAI() {
		client, err := provider.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, "")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create OpenAI client")
		}
		textGen, transcriber, synthesizer = client, client, client
		log.Info().Str("model", client.ModelID()).Msg("OpenAI provider configured")
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set, AI endpoints degraded")
	}

	// ─── Artifact Store ────────────────────────────────────────────────
	var artifacts store.ArtifactStore
	switch {
	case cfg.HasSupabase():
		artifacts = store.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
		log.Info().Str("url", cfg.SupabaseURL).Msg("Supabase artifact store configured")
	case cfg.DatabaseURL != "":
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		artifacts = store.NewPostgresStore(pool)
	default:
		artifacts = store.NewNoopStore()
		log.Warn().Msg("No persistence backend configured, artifacts discarded")
	}

	// ─── Redis (optional TTS audio cache) ──────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, speech cache disabled")
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService, err := service.NewAuthService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth service")
	}
	materialService := service.NewMaterialService(textGen, log)
	evaluationService := service.NewEvaluationService(textGen, artifacts, log)
	speechService := service.NewSpeechService(transcriber, synthesizer, rdb, artifacts, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Example:    handler.NewExampleHandler(),
		Material:   handler.NewMaterialHandler(materialService),
		Evaluation: handler.NewEvaluationHandler(evaluationService),
		Speech:     handler.NewSpeechHandler(speechService, cfg.MaxAudioBytes),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Give detached persistence writes a moment to drain.
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
